package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ryanmcf10/three-body-simulation/internal/body"
	"github.com/ryanmcf10/three-body-simulation/internal/config"
	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/placement"
	"github.com/ryanmcf10/three-body-simulation/internal/units"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

func placeCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bodies, err := placeBodies(os.Stdin, os.Stdout, cfg.Units, placement.RandomColors(cfg.Seed))
	if err != nil {
		return err
	}

	cfg.Bodies = config.BodyConfigs(cfg.Units, bodies)
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

// placeBodies drives a placement session from text. Each line is a pixel
// pointer position "x y" that is tracked and then committed, the way a
// mouse click would be: the body's position, then a point at the drag
// distance for its size, then the tip of its velocity drag.
func placeBodies(r io.Reader, w io.Writer, conv units.Converter, colors [dynamo.NumBodies]body.Color) ([dynamo.NumBodies]body.Body, error) {
	sess := placement.NewSession(conv, colors)
	in := bufio.NewScanner(r)

	for !sess.Ready() {
		p := sess.Current()
		fmt.Fprintf(w, "body %d: %s\n> ", sess.Index()+1, p.Stage().Prompt())
		if !in.Scan() {
			break
		}

		pointer, err := parsePointer(in.Text())
		if err != nil {
			fmt.Fprintf(w, "%v\n", err)
			continue
		}
		sess.Track(pointer)
		if err := sess.Commit(); err != nil {
			return [dynamo.NumBodies]body.Body{}, err
		}
	}
	if err := in.Err(); err != nil {
		return [dynamo.NumBodies]body.Body{}, err
	}

	bodies, err := sess.Bodies()
	if err != nil {
		return bodies, err
	}
	fmt.Fprintln(w, placement.StageReady.Prompt())
	return bodies, nil
}

func parsePointer(line string) (r3.Vec, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return r3.Vec{}, fmt.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return r3.Vec{}, fmt.Errorf("bad x: %w", err)
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return r3.Vec{}, fmt.Errorf("bad y: %w", err)
	}
	return r3.Vec{X: x, Y: y}, nil
}
