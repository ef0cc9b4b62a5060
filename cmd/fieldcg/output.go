package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/1homsi/fieldcg/internal/flow"
	"github.com/1homsi/fieldcg/internal/pipeline"
)

func dumpFlowGraph(res *pipeline.Result) ([]byte, error) {
	return flow.Dump(res.Graph)
}

func pipelineCallbackStats(res *pipeline.Result) any {
	return pipeline.CountCallbacks(res.Context.Functions)
}

func pipelineAMDGraph(res *pipeline.Result) any {
	return pipeline.AMDGraph(res.Context.Files)
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return writeBytes(path, data)
}

func writeBytes(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
