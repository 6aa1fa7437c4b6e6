package weightsio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ChizhovVadim/CheckersGo/pkg/eval"
)

const version = 1

var ErrBadCheckpoint = errors.New("weightsio: bad checkpoint")

type featureRecord struct {
	Tag    string  `json:"tag"`
	Weight float64 `json:"weight"`
	Active bool    `json:"active"`
}

type checkpoint struct {
	Version  int             `json:"version"`
	Features []featureRecord `json:"features"`
	Active   []string        `json:"active"`
}

func Save(w io.Writer, e *eval.Evaluator) error {
	var c = checkpoint{Version: version}
	for i, f := range e.Features() {
		c.Features = append(c.Features, featureRecord{
			Tag:    f.Tag,
			Weight: e.Weight(i),
			Active: e.IsActive(i),
		})
	}
	for _, index := range e.Active() {
		c.Active = append(c.Active, e.Feature(index).Tag)
	}
	var enc = json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&c)
}

// Load applies a checkpoint to e. Every tag must be known to e; features missing
// from the checkpoint keep their weights.
func Load(r io.Reader, e *eval.Evaluator) error {
	var c checkpoint
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return fmt.Errorf("%w: %w", ErrBadCheckpoint, err)
	}
	if c.Version != version {
		return fmt.Errorf("%w: version %d", ErrBadCheckpoint, c.Version)
	}
	var weights = e.Weights()
	for _, f := range c.Features {
		var index, ok = e.Index(f.Tag)
		if !ok {
			return fmt.Errorf("%w: %w: %v", ErrBadCheckpoint, eval.ErrUnknownTag, f.Tag)
		}
		weights[index] = f.Weight
	}
	if err := e.SetActive(c.Active); err != nil {
		return fmt.Errorf("%w: %w", ErrBadCheckpoint, err)
	}
	for i, w := range weights {
		e.SetWeight(i, w)
	}
	return nil
}

func SaveFile(path string, e *eval.Evaluator) error {
	var f, err = os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, e); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func LoadFile(path string, e *eval.Evaluator) error {
	var f, err = os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Load(f, e)
}
