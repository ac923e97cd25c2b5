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

// Command coo generates, sorts and inspects coordinate-format sparse
// tensor datasets on disk.
//
// A dataset is a directory holding a desc.yaml shape file next to the
// array blobs:
//
//	coo gen  --spec shape.yaml --out data/
//	coo sort --data data/ --dims 2,0
//	coo info --data data/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "coo",
		Short:         "Generate, sort and inspect sparse tensor datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(genCmd(), sortCmd(), infoCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "coo: %v\n", err)
		os.Exit(1)
	}
}
