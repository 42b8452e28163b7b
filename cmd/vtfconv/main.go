// vtfconv - VTF texture converter
//
// Converts between VTF (Valve Texture Format) and PNG. VTF block formats are
// lossy, so decode goes through RGBA and saves as PNG for lossless editing;
// encode recompresses with mipmap generation.
//
// Usage:
//   vtfconv decode input.vtf output.png          # VTF → PNG
//   vtfconv encode input.png output.vtf          # PNG → VTF
//   vtfconv info input.vtf                       # Show texture info
//   vtfconv batch decode|encode in_dir out_dir   # Batch convert directory
//
// Files with a .vtfz extension are read and written through the zstd
// container transparently.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmg-divined/vtf-photoshop-plugin/pkg/vtf"
	"github.com/cmg-divined/vtf-photoshop-plugin/pkg/vtfz"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch command := os.Args[1]; command {
	case "decode":
		if len(os.Args) != 4 {
			fmt.Fprintf(os.Stderr, "Usage: vtfconv decode input.vtf output.png\n")
			os.Exit(1)
		}
		if err = decodeVTF(os.Args[2], os.Args[3]); err == nil {
			fmt.Printf("Decoded %s → %s\n", os.Args[2], os.Args[3])
		}

	case "encode":
		if len(os.Args) < 4 {
			fmt.Fprintf(os.Stderr, "Usage: vtfconv encode input.png output.vtf [options]\n")
			os.Exit(1)
		}
		if err = encodeVTF(os.Args[2], os.Args[3], os.Args[4:]); err == nil {
			fmt.Printf("Encoded %s → %s\n", os.Args[2], os.Args[3])
		}

	case "info":
		if len(os.Args) != 3 {
			fmt.Fprintf(os.Stderr, "Usage: vtfconv info input.vtf\n")
			os.Exit(1)
		}
		err = showInfo(os.Args[2])

	case "batch":
		if len(os.Args) != 5 {
			fmt.Fprintf(os.Stderr, "Usage: vtfconv batch decode|encode input_dir output_dir\n")
			os.Exit(1)
		}
		err = batchConvert(os.Args[2], os.Args[3], os.Args[4])

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("vtfconv - VTF texture converter")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  vtfconv decode <input.vtf> <output.png>      # VTF → PNG")
	fmt.Println("  vtfconv encode <input.png> <output.vtf>      # PNG → VTF")
	fmt.Println("  vtfconv info <input.vtf>                     # Show info")
	fmt.Println("  vtfconv batch <decode|encode> <dir> <out>    # Batch convert")
	fmt.Println()
	fmt.Println("Encode options:")
	fmt.Println("  -format dxt1|dxt5|rgba8888|bgra8888|rgb888|bgr888")
	fmt.Println("  -nomips      skip mipmap generation")
	fmt.Println()
	fmt.Println("A .vtfz extension selects the zstd-compressed container.")
}

// readVTF loads a VTF file, unwrapping the zstd container for .vtfz paths.
func readVTF(path string) ([]byte, error) {
	if strings.HasSuffix(strings.ToLower(path), ".vtfz") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open: %w", err)
		}
		defer f.Close()
		return vtfz.ReadAll(f)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return data, nil
}

// writeVTF stores a VTF file, wrapping it in the zstd container for .vtfz
// paths.
func writeVTF(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".vtfz") {
		return vtfz.Encode(f, data)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// decodeVTF reads a VTF file and converts it to PNG.
func decodeVTF(inputPath, outputPath string) error {
	data, err := readVTF(inputPath)
	if err != nil {
		return err
	}

	img, err := vtf.Decode(data)
	if err != nil {
		if !errors.Is(err, vtf.ErrUnsupportedFormat) {
			return fmt.Errorf("decode: %w", err)
		}
		// Keep the best-effort pixels but tell the user.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(nrgba.Pix, img.Pix)

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer outFile.Close()

	if err := png.Encode(outFile, nrgba); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// encodeVTF reads a PNG and converts it to VTF.
func encodeVTF(inputPath, outputPath string, args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	formatName := fs.String("format", "", "target format (default: dxt5, dxt1 when opaque)")
	noMips := fs.Bool("nomips", false, "skip mipmap generation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("decode png: %w", err)
	}

	bounds := src.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), src, bounds.Min, draw.Src)

	opts := []vtf.EncodeOption{vtf.WithAlpha(hasTranslucency(nrgba.Pix))}
	if *formatName != "" {
		format, err := parseFormat(*formatName)
		if err != nil {
			return err
		}
		opts = append(opts, vtf.WithFormat(format))
	}
	if *noMips {
		opts = append(opts, vtf.WithoutMipmaps())
	}

	data, err := vtf.Encode(nrgba.Pix, bounds.Dx(), bounds.Dy(), opts...)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	return writeVTF(outputPath, data)
}

// hasTranslucency reports whether any pixel in an RGBA8 buffer has alpha
// below 255.
func hasTranslucency(rgba []byte) bool {
	for i := 3; i < len(rgba); i += 4 {
		if rgba[i] != 255 {
			return true
		}
	}
	return false
}

func parseFormat(name string) (vtf.ImageFormat, error) {
	switch strings.ToLower(name) {
	case "dxt1":
		return vtf.FormatDXT1, nil
	case "dxt5":
		return vtf.FormatDXT5, nil
	case "rgba8888":
		return vtf.FormatRGBA8888, nil
	case "bgra8888":
		return vtf.FormatBGRA8888, nil
	case "rgb888":
		return vtf.FormatRGB888, nil
	case "bgr888":
		return vtf.FormatBGR888, nil
	default:
		return vtf.FormatNone, fmt.Errorf("unknown format: %s", name)
	}
}

// showInfo displays header information for a VTF file.
func showInfo(inputPath string) error {
	data, err := readVTF(inputPath)
	if err != nil {
		return err
	}

	header, err := vtf.DecodeHeader(data)
	if err != nil {
		return fmt.Errorf("parse header: %w", err)
	}

	fmt.Printf("File: %s\n", inputPath)
	fmt.Printf("Version: %d.%d\n", header.MajorVersion, header.MinorVersion)
	fmt.Printf("Dimensions: %dx%d\n", header.Width, header.Height)
	fmt.Printf("Format: %s\n", header.HighResFormat)
	fmt.Printf("Mip levels: %d\n", header.MipmapCount)
	fmt.Printf("Frames: %d\n", header.Frames)
	fmt.Printf("Flags: 0x%08x\n", header.Flags)
	fmt.Printf("Has alpha: %v\n", header.HighResFormat.HasAlpha())
	if header.LowResFormat != vtf.FormatNone {
		fmt.Printf("Thumbnail: %dx%d %s\n", header.LowResWidth, header.LowResHeight, header.LowResFormat)
	}
	fmt.Printf("Mip 0 size: %d bytes\n",
		vtf.ImageSize(int(header.Width), int(header.Height), header.HighResFormat))
	return nil
}

// batchConvert processes a directory of files.
func batchConvert(mode, inputDir, outputDir string) error {
	if mode != "decode" && mode != "encode" {
		return fmt.Errorf("unknown batch mode: %s", mode)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	srcExts := []string{".png"}
	if mode == "decode" {
		srcExts = []string{".vtf", ".vtfz"}
	}

	count := 0
	failures := 0

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		matched := false
		for _, e := range srcExts {
			if ext == e {
				matched = true
			}
		}
		if !matched {
			return nil
		}

		relPath, _ := filepath.Rel(inputDir, path)
		outPath := filepath.Join(outputDir, relPath)
		if mode == "decode" {
			outPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".png"
		} else {
			outPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".vtf"
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", filepath.Dir(outPath), err)
			failures++
			return nil
		}

		var convErr error
		if mode == "decode" {
			convErr = decodeVTF(path, outPath)
		} else {
			convErr = encodeVTF(path, outPath, nil)
		}

		if convErr != nil {
			fmt.Fprintf(os.Stderr, "convert %s: %v\n", path, convErr)
			failures++
		} else {
			count++
			if count%100 == 0 {
				fmt.Printf("Processed %d files...\n", count)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nCompleted: %d files converted, %d errors\n", count, failures)
	return nil
}
