package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dargueta/lowpix/codecs"
	"github.com/dargueta/lowpix/utilities/compression"
	"github.com/dargueta/lowpix/utilities/report"
	"github.com/urfave/cli/v2"
)

func inputOutputArgs(context *cli.Context) (string, string, error) {
	if context.NArg() != 2 {
		return "", "", fmt.Errorf(
			"%s needs exactly two arguments, an input and an output file; got %d",
			context.Command.Name,
			context.NArg())
	}
	return context.Args().Get(0), context.Args().Get(1), nil
}

func (a *application) encodeFile(context *cli.Context) error {
	inputPath, outputPath, err := inputOutputArgs(context)
	if err != nil {
		return err
	}

	codecName := a.config.Codec
	if context.IsSet("codec") {
		codecName = context.String("codec")
	}
	codec, err := codecs.Lookup(codecName)
	if err != nil {
		return err
	}

	options := compression.Options{Gzip: a.config.Gzip}
	if context.IsSet("gzip") {
		options.Gzip = context.Bool("gzip")
	}

	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open file for reading: `%v`: %w", inputPath, err)
	}
	defer input.Close()

	output, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to open file for writing: `%v`: %w", outputPath, err)
	}
	defer output.Close()

	written, err := compression.CompressStream(input, output, codec, options)
	if err != nil {
		return fmt.Errorf("error compressing %s: %w", inputPath, err)
	}

	a.logger.Info("encoded file",
		"input", inputPath,
		"output", outputPath,
		"codec", codec.Name,
		"gzip", options.Gzip,
		"bytes", written,
	)
	return output.Close()
}

func (a *application) decodeFile(context *cli.Context) error {
	inputPath, outputPath, err := inputOutputArgs(context)
	if err != nil {
		return err
	}

	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open file for reading: `%v`: %w", inputPath, err)
	}
	defer input.Close()

	// Decode fully before creating the output, so a corrupt block doesn't leave
	// an empty file behind.
	data, err := compression.DecompressToBytes(input)
	if err != nil {
		return fmt.Errorf("error expanding %s: %w", inputPath, err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return err
	}

	a.logger.Info("decoded file", "input", inputPath, "output", outputPath, "bytes", len(data))
	return nil
}

func (a *application) printStats(context *cli.Context) error {
	if context.NArg() == 0 {
		return fmt.Errorf("stats needs at least one file")
	}

	options := report.Options{Baselines: a.config.Baselines}
	if context.IsSet("baselines") {
		options.Baselines = context.Bool("baselines")
	}

	var rows []report.Row
	for _, path := range context.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fileRows := report.Measure(path, data, codecs.All(), options)
		for _, row := range fileRows {
			if row.Error != "" {
				a.logger.Warn("codec failed", "file", path, "codec", row.Codec, "error", row.Error)
			} else {
				a.logger.Debug("measured", "file", path, "codec", row.Codec, "ratio", row.Ratio)
			}
		}
		rows = append(rows, fileRows...)
	}

	var output io.Writer = a.stdout
	if outputPath := context.String("output"); outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to open file for writing: `%v`: %w", outputPath, err)
		}
		defer file.Close()
		output = file
	}
	return report.WriteCSV(output, rows)
}
