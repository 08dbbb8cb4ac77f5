package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"reward_wheel/internal/spinner"
)

var demoSegments = []spinner.Segment{
	{Name: "Coffee", Color: "#e63946", Probability: 30},
	{Name: "Sticker", Color: "#f1c453", Probability: 25},
	{Name: "T-shirt", Color: "#2a9d8f", Probability: 20},
	{Name: "Mug", Color: "#457b9d", Probability: 15},
	{Name: "Jackpot", Color: "#8338ec", Probability: 5},
	{Name: "Try again", Color: "#6c757d", Probability: 5},
}

type segmentsFile struct {
	Segments []struct {
		Name        string  `yaml:"name"`
		Color       string  `yaml:"color"`
		Probability float64 `yaml:"probability"`
	} `yaml:"segments"`
}

// loadSegments reads the segments list next to the wheel section. A missing
// file or an empty list gives the demo wheel.
func loadSegments(path string) ([]spinner.Segment, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return demoSegments, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read segments: %w", err)
	}
	return parseSegments(data)
}

func parseSegments(data []byte) ([]spinner.Segment, error) {
	var f segmentsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse segments: %w", err)
	}
	if len(f.Segments) == 0 {
		return demoSegments, nil
	}

	segments := make([]spinner.Segment, 0, len(f.Segments))
	for _, s := range f.Segments {
		segments = append(segments, spinner.Segment{Name: s.Name, Color: s.Color, Probability: s.Probability})
	}
	if err := spinner.ValidateSegments(segments); err != nil {
		return nil, err
	}
	return segments, nil
}
