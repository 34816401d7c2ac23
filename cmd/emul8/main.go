/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"emul8"
	"emul8/config"
	"emul8/translate"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
)

var f = translate.From

func main() {
	log.SetFlags(0)
	log.SetPrefix("emul8: ")

	var (
		confPath  = flag.String("config", "", f("settings file (TOML)"))
		frontend  = flag.String("frontend", "", f("frontend: gui or term"))
		backend   = flag.String("audio", "", f("audio backend: portaudio, oto or none"))
		scale     = flag.Int("scale", 0, f("window scale"))
		allowFlag = flag.Bool("allow-vf", false, f("allow VF as an instruction operand"))
	)
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), f("usage: emul8 [flags] rom"))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	name := flag.Arg(0)

	conf := config.Default()
	if *confPath != "" {
		var err error
		conf, err = config.Load(*confPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	// Flags given on the command line override the settings file.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "frontend":
			conf.Frontend = *frontend
		case "audio":
			conf.Audio = *backend
		case "scale":
			conf.Scale = *scale
		case "allow-vf":
			conf.AllowFlagOperand = *allowFlag
		}
	})

	e, err := emul8.New(conf)
	if err != nil {
		log.Fatal(err)
	}

	file, err := os.Open(name)
	if err != nil {
		log.Fatal(err)
	}

	b, err := io.ReadAll(file)
	_ = file.Close()
	if err != nil {
		log.Fatal(err)
	}

	if err := e.Load(b); err != nil {
		log.Fatal(f("%v: %v", name, err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := e.Run(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}
