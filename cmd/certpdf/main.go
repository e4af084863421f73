// seehuhn.de/go/certpdf - generate PDF certificates from layout templates
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Certpdf renders a certificate document from JSON or YAML input files.
//
// Usage:
//
//	certpdf [options] request.yaml
//	certpdf [options] -cert cert.json -template template.json
//
// A request file holds the keys "certificate", "template" and, optionally,
// "locale".  The document is written to the file given by -o, or to
// certificate-<number>.pdf in the current directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"

	"golang.org/x/term"

	"seehuhn.de/go/certpdf/certificate"
	"seehuhn.de/go/certpdf/compose"
	"seehuhn.de/go/certpdf/config"
	"seehuhn.de/go/certpdf/internal/logging"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "certpdf:", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage: certpdf [options] request.yaml")

func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("certpdf", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configFile := flags.String("c", "", "configuration file")
	certFile := flags.String("cert", "", "certificate file")
	templateFile := flags.String("template", "", "template file")
	output := flags.String("o", "", "output file, or \"-\" for standard output")
	locale := flags.String("locale", "", "language of bilingual fields (ar or en)")
	defaultLayout := flags.Bool("default-layout", false, "always draw the built-in layout")
	askPassword := flags.Bool("p", false, "ask for an owner password")
	err := flags.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	logger := logging.New(stderr, cfg.LogFormat, cfg.LogLevel)
	logging.SetLogger(logger)

	req, err := readRequest(flags.Args(), *certFile, *templateFile)
	if err != nil {
		return err
	}
	if *locale != "" {
		req.Locale = *locale
	}

	if *askPassword {
		if !term.IsTerminal(syscall.Stdin) {
			return errors.New("-p needs a terminal")
		}
		fmt.Fprint(stderr, "owner password: ")
		passwd, err := term.ReadPassword(syscall.Stdin)
		fmt.Fprintln(stderr)
		if err != nil {
			return err
		}
		cfg.OwnerPassword = string(passwd)
	}

	opt, err := cfg.GeneratorOptions(logger)
	if err != nil {
		return err
	}
	opt.ForceDefaultLayout = opt.ForceDefaultLayout || *defaultLayout
	gen := compose.New(opt)

	data, err := gen.RenderRequest(context.Background(), req)
	if err != nil {
		return err
	}

	switch *output {
	case "-":
		if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errors.New("not writing PDF data to a terminal")
		}
		_, err = stdout.Write(data)
		return err
	case "":
		*output = compose.Filename(req.Certificate)
	}
	err = os.WriteFile(*output, data, 0o644)
	if err != nil {
		return err
	}
	logger.Info("certificate written", "file", *output, "bytes", len(data))
	return nil
}

func readRequest(args []string, certFile, templateFile string) (*certificate.Request, error) {
	switch {
	case len(args) == 1 && certFile == "" && templateFile == "":
		fd, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer fd.Close()
		return certificate.ReadRequest(fd)

	case len(args) == 0 && certFile != "" && templateFile != "":
		req := &certificate.Request{}
		fd, err := os.Open(certFile)
		if err != nil {
			return nil, err
		}
		defer fd.Close()
		req.Certificate, err = certificate.ReadCertificate(fd)
		if err != nil {
			return nil, err
		}

		fd2, err := os.Open(templateFile)
		if err != nil {
			return nil, err
		}
		defer fd2.Close()
		req.Template, err = certificate.ReadTemplate(fd2)
		if err != nil {
			return nil, err
		}
		return req, nil

	default:
		return nil, errUsage
	}
}
