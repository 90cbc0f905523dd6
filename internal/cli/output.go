package cli

import (
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	infoColor    = color.New(color.FgCyan)
)

func success(w io.Writer, msg string) { successColor.Fprintln(w, msg) }

func failure(w io.Writer, msg string) { failureColor.Fprintln(w, msg) }

func info(w io.Writer, msg string) { infoColor.Fprintln(w, msg) }
