package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/invascii-cli/internal/ascii"
	"github.com/AnyUserName/invascii-cli/internal/pixel"
)

var (
	asciiResolution int
	asciiInvert     bool
)

var asciiCmd = &cobra.Command{
	Use:   "ascii <image>",
	Short: "Print the ASCII rendition of one image",
	Args:  cobra.ExactArgs(1),
	RunE:  runASCII,
}

func init() {
	asciiCmd.Flags().IntVarP(&asciiResolution, "resolution", "r", ascii.DefaultResolution, "downsampling divisor")
	asciiCmd.Flags().BoolVarP(&asciiInvert, "invert", "i", false, "invert colors before rendering")
	rootCmd.AddCommand(asciiCmd)
}

func runASCII(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	return renderASCII(cmd.OutOrStdout(), data, asciiResolution, asciiInvert)
}

func renderASCII(w io.Writer, data []byte, resolution int, invert bool) error {
	g, _, err := pixel.Decode(data)
	if err != nil {
		return err
	}
	if invert {
		g.InvertInPlace()
	}
	c, err := ascii.Render(g, resolution)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, c.Text)
	return err
}
