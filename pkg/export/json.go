// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package export

import (
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
)

// Bundle groups the documents of several modules, as written to a single JSON
// file.
type Bundle struct {
	Modules []*Document `json:"modules"`
}

// WriteJSON writes a given set of documents as an (indented) JSON bundle.
func WriteJSON(out io.Writer, docs []*Document) error {
	bytes, err := json.MarshalIndent(Bundle{docs}, "", "  ")
	if err != nil {
		return err
	}
	//
	if _, err = out.Write(bytes); err != nil {
		return err
	}
	//
	_, err = io.WriteString(out, "\n")
	//
	return err
}

// ReadJSON reads a JSON bundle of documents, validating each.
func ReadJSON(in io.Reader) ([]*Document, error) {
	var bundle Bundle
	//
	bytes, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	//
	if err := json.Unmarshal(bytes, &bundle); err != nil {
		return nil, fmt.Errorf("malformed bundle: %w", err)
	}
	//
	for _, doc := range bundle.Modules {
		if doc == nil {
			return nil, fmt.Errorf("%w: null module", ErrInvalidDocument)
		} else if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("module %s: %w", doc.Module, err)
		}
	}
	//
	return bundle.Modules, nil
}
