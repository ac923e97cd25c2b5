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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bufbuild/coo"
)

func infoCmd() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Describe a dataset: shape, sizes and per-dimension fill",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, t, err := loadDataset(data)
			if err != nil {
				return err
			}

			fmt.Println(t.Desc)
			fmt.Printf("entries: %s of %s cells (%.4g%% dense)\n",
				humanize.Comma(int64(t.Len())),
				humanize.Comma(int64(t.Desc.TotalSize())),
				100*float64(t.Len())/float64(t.Desc.TotalSize()))

			for _, p := range []string{indxPath(data), elemPath(data)} {
				if st, err := os.Stat(p); err == nil {
					fmt.Printf("%s: %s\n", p, humanize.Bytes(uint64(st.Size())))
				}
			}

			freq := coo.NewFreq(t.Desc, t.Indx)
			for dim := 0; dim < t.Desc.Order(); dim++ {
				used := 0
				for _, n := range freq.Counts(dim) {
					if n > 0 {
						used++
					}
				}
				fmt.Printf("dim %d: %d of %d coordinates used\n", dim, used, t.Desc.DimSize(dim))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "dataset directory (required)")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
