// Command qoiconv converts images between PNG and QOI based on file
// extension, the way the reference qoiconv example does.
package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/qoi-go/qoi/qoiimage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: qoiconv <input-path> [<output-path>]")
		fmt.Fprintln(os.Stderr, "Example: qoiconv images/foo.png images/foo.qoi")
		os.Exit(1)
	}

	input := os.Args[1]
	decoding := strings.EqualFold(filepath.Ext(input), ".qoi")

	var output string
	if len(os.Args) >= 3 {
		output = os.Args[2]
	} else if decoding {
		output = withExt(input, ".png")
	} else {
		output = withExt(input, ".qoi")
	}

	if _, err := os.Stat(output); err == nil {
		fmt.Fprintf(os.Stderr, "Output path %q already occupied\n", output)
		os.Exit(1)
	}

	in, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %q: %v\n", input, err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create %q: %v\n", output, err)
		os.Exit(1)
	}
	defer out.Close()

	if decoding {
		err = decodeQOIToPNG(in, out)
	} else {
		err = encodePNGToQOI(in, out)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conversion of %q failed: %v\n", input, err)
		os.Remove(output)
		os.Exit(1)
	}
}

func decodeQOIToPNG(in *os.File, out *os.File) error {
	img, err := qoiimage.Decode(in)
	if err != nil {
		return fmt.Errorf("decode qoi: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func encodePNGToQOI(in *os.File, out *os.File) error {
	img, err := png.Decode(in)
	if err != nil {
		return fmt.Errorf("decode png: %w", err)
	}
	if err := qoiimage.Encode(out, img, nil); err != nil {
		return fmt.Errorf("encode qoi: %w", err)
	}
	return nil
}

func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
