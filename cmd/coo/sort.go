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
	"time"

	"github.com/spf13/cobra"

	"github.com/bufbuild/coo"
)

func sortCmd() *cobra.Command {
	var (
		data      string
		out       string
		dims      []int
		radixBits int
		threads   int
	)

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort a dataset by one or more dimensions, highest priority first",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, t, err := loadDataset(data)
			if err != nil {
				return err
			}

			var opts []coo.SortOption
			if radixBits != 0 {
				opts = append(opts, coo.WithRadixBits(radixBits))
			}
			if threads != 0 {
				opts = append(opts, coo.WithThreads(threads))
			}

			perm := coo.NewPerm(t.Len())
			start := time.Now()
			if err := coo.Sort(t.Desc, t.Indx, perm, dims, opts...); err != nil {
				return err
			}
			if err := coo.PermuteInPlace(t.Elems, perm); err != nil {
				return err
			}
			elapsed := time.Since(start)

			if out == "" {
				out = data
			}
			if err := saveDataset(out, spec, t); err != nil {
				return err
			}
			fmt.Printf("sorted %d entries by dims %v in %v\n", t.Len(), dims, elapsed.Round(time.Microsecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "dataset directory (required)")
	cmd.Flags().StringVar(&out, "out", "", "output directory (default: sort in place)")
	cmd.Flags().IntSliceVar(&dims, "dims", nil, "dimensions to sort by, highest priority first (required)")
	cmd.Flags().IntVar(&radixBits, "radix-bits", 0, "bits per radix pass (default 8)")
	cmd.Flags().IntVar(&threads, "threads", 0, "worker count (default: automatic)")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("dims")
	return cmd
}
