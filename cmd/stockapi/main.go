// Package main - stockapi CLI
//
// 사용법:
//
//	go run ./cmd/stockapi ingest --csv Datasets/PLTR_2020-09-30_2025-09-09.csv
//	go run ./cmd/stockapi serve --port 5000
package main

import (
	"os"

	"github.com/ioane-gh/PLTR-Stock/cmd/stockapi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
