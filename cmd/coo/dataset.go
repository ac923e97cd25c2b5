// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/coo"
	"github.com/bufbuild/coo/blob"
)

// shapeSpec is the yaml description of a dataset: the tensor's dimension
// sizes, how many non-zero entries to hold, and the seed they were (or
// will be) sampled with.
type shapeSpec struct {
	Dims []coo.Word `yaml:"dims"`
	NNZ  int        `yaml:"nnz"`
	Seed uint64     `yaml:"seed"`
}

func (s *shapeSpec) descriptor() (*coo.Descriptor, error) {
	return coo.NewDescriptor(s.Dims...)
}

func loadSpec(path string) (*shapeSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	spec := new(shapeSpec)
	if err := yaml.Unmarshal(raw, spec); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if spec.NNZ < 0 {
		return nil, fmt.Errorf("%s: negative nnz", path)
	}
	return spec, nil
}

func saveSpec(path string, spec *shapeSpec) error {
	raw, err := yaml.Marshal(spec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// Dataset directory layout.
func specPath(dir string) string { return filepath.Join(dir, "desc.yaml") }
func indxPath(dir string) string { return filepath.Join(dir, "indx.coo") }
func elemPath(dir string) string { return filepath.Join(dir, "elem.coo") }

// loadDataset reads a dataset directory back into a tensor.
func loadDataset(dir string) (*shapeSpec, *coo.Tensor, error) {
	spec, err := loadSpec(specPath(dir))
	if err != nil {
		return nil, nil, err
	}
	desc, err := spec.descriptor()
	if err != nil {
		return nil, nil, err
	}

	indx, err := blob.LoadIndex(indxPath(dir))
	if err != nil {
		return nil, nil, err
	}
	elems, err := blob.LoadElems(elemPath(dir))
	if err != nil {
		return nil, nil, err
	}
	if len(indx) != len(elems) {
		return nil, nil, fmt.Errorf("%s: %d indices but %d elements", dir, len(indx), len(elems))
	}

	return spec, &coo.Tensor{Desc: desc, Indx: indx, Elems: elems}, nil
}

// saveDataset writes a tensor into a dataset directory.
func saveDataset(dir string, spec *shapeSpec, t *coo.Tensor) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := saveSpec(specPath(dir), spec); err != nil {
		return err
	}
	if err := blob.SaveIndex(indxPath(dir), t.Indx); err != nil {
		return err
	}
	return blob.SaveElems(elemPath(dir), t.Elems)
}
