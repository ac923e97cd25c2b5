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
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/bufbuild/coo"
)

func genCmd() *cobra.Command {
	var (
		specFile string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Sample a random tensor described by a yaml shape file",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := loadSpec(specFile)
			if err != nil {
				return err
			}

			t, err := coo.NewTensor(spec.NNZ, spec.Dims...)
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewPCG(spec.Seed, 0))
			if err := t.Sample(rng); err != nil {
				return err
			}

			if err := saveDataset(out, spec, t); err != nil {
				return err
			}
			fmt.Printf("wrote %d entries of %v to %s\n", t.Len(), t.Desc, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&specFile, "spec", "", "yaml shape file (required)")
	cmd.Flags().StringVar(&out, "out", "", "output dataset directory (required)")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
