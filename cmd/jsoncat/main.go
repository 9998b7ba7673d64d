/*
 * MinIO Cloud Storage, (C) 2020 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command jsoncat validates and inspects a JSON document from the command
// line: a single flags.NewParser over a struct of long/short options,
// --help/--version handled explicitly, reading from a file or stdin.
package main

import (
	"fmt"
	"io"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/alecthomas/repr"

	tokenizer "github.com/strict-json/tokenizer"
	"github.com/strict-json/tokenizer/internal/cpufeature"
	"github.com/strict-json/tokenizer/serialize"
)

var version = "dev"

type options struct {
	File       string `short:"f" long:"file" description:"read JSON from the file, rather than stdin" value-name:"filename" default:"-"`
	MaxDepth   uint   `long:"max-depth" description:"maximum container nesting depth" value-name:"depth" default:"1024"`
	Tree       bool   `long:"tree" description:"print the parsed document as a tree of decoded values"`
	Serialize  string `long:"serialize" description:"serialize the parsed tokens to the given file instead of printing anything" value-name:"filename"`
	NDJSON     bool   `long:"ndjson" description:"treat input as newline-delimited JSON, validating one document per line"`
	Quiet      bool   `short:"q" long:"quiet" description:"suppress all output, only report validity via exit code"`
	CPUProfile bool   `long:"show-cpu" description:"print the tuning profile detected for this host and exit"`
	Help       bool   `long:"help" description:"show this help"`
	Version    bool   `long:"version" description:"show this version"`
}

func parseOptions(args []string) (*options, []string) {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[options]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}
	return &opts, rest
}

func main() {
	opts, _ := parseOptions(os.Args[1:])

	if opts.CPUProfile {
		p := cpufeature.Detect()
		fmt.Printf("logical cores: %d\nL2 cache: %d bytes\nAVX2: %v\nrecommended token capacity: %d\n",
			p.LogicalCores, p.L2CacheBytes, p.HasAVX2, p.RecommendedTokenCapacity())
		return
	}

	var src io.Reader = os.Stdin
	if opts.File != "-" {
		f, err := os.Open(opts.File)
		if err != nil {
			fmt.Fprintln(os.Stderr, "jsoncat:", err)
			os.Exit(1)
		}
		defer f.Close()
		src = f
	}
	profile := cpufeature.Detect()
	parser, err := tokenizer.NewParser(
		tokenizer.WithMaxDepth(int(opts.MaxDepth)),
		tokenizer.WithFixedCapacity(profile.RecommendedTokenCapacity()),
		tokenizer.WithAllocator(tokenizer.DefaultAllocator),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsoncat:", err)
		os.Exit(1)
	}

	if opts.NDJSON {
		count := 0
		err := parser.ParseAll(src, func(p *tokenizer.Parser) error {
			count++
			return nil
		})
		if err != nil {
			if !opts.Quiet {
				fmt.Fprintln(os.Stderr, "jsoncat: invalid JSON:", err)
			}
			os.Exit(1)
		}
		if !opts.Quiet {
			fmt.Printf("valid JSON (%d documents)\n", count)
		}
		return
	}

	msg, err := io.ReadAll(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsoncat: reading input:", err)
		os.Exit(1)
	}

	if err := parser.Parse(msg); err != nil {
		if !opts.Quiet {
			fmt.Fprintln(os.Stderr, "jsoncat: invalid JSON:", err)
		}
		os.Exit(1)
	}

	if opts.Quiet {
		return
	}

	if opts.Serialize != "" {
		s := serialize.NewSerializer()
		blob, err := s.Serialize(nil, parser.Tokens(), parser.Input())
		if err != nil {
			fmt.Fprintln(os.Stderr, "jsoncat: serializing:", err)
			os.Exit(1)
		}
		if err := os.WriteFile(opts.Serialize, blob, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "jsoncat:", err)
			os.Exit(1)
		}
		return
	}

	if opts.Tree {
		v, err := parser.Root().AsInterface()
		if err != nil {
			fmt.Fprintln(os.Stderr, "jsoncat: decoding:", err)
			os.Exit(1)
		}
		repr.Println(v)
		return
	}

	fmt.Println("valid JSON")
}
