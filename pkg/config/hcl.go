// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/vidmirror/pkg/encode"
	"github.com/walteh/vidmirror/pkg/scale"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// hclConfig is the HCL schema. Overrides are labeled blocks:
//
//	override "movies/action" {
//	  height = 480
//	}
type hclConfig struct {
	Source        string `hcl:"source"`
	Destination   string `hcl:"destination"`
	DefaultHeight int    `hcl:"default_height,optional"`

	Overrides []struct {
		Dir    string `hcl:"dir,label"`
		Height int    `hcl:"height"`
	} `hcl:"override,block"`

	Encoder *struct {
		Binary     string `hcl:"binary,optional"`
		VideoCodec string `hcl:"video_codec,optional"`
		CRF        int    `hcl:"crf,optional"`
		Preset     string `hcl:"preset,optional"`
		AudioCodec string `hcl:"audio_codec,optional"`
	} `hcl:"encoder,block"`

	Excludes   []string `hcl:"excludes,optional"`
	Extensions []string `hcl:"extensions,optional"`
	ScratchDir string   `hcl:"scratch_dir,optional"`
	Workers    int      `hcl:"workers,optional"`
	DryRun     bool     `hcl:"dry_run,optional"`
}

// loadHCL loads a configuration from HCL data
func loadHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Source:        hclCfg.Source,
		Destination:   hclCfg.Destination,
		DefaultHeight: hclCfg.DefaultHeight,
		Excludes:      hclCfg.Excludes,
		Extensions:    hclCfg.Extensions,
		ScratchDir:    hclCfg.ScratchDir,
		Workers:       hclCfg.Workers,
		DryRun:        hclCfg.DryRun,
	}

	for _, o := range hclCfg.Overrides {
		cfg.Overrides = append(cfg.Overrides, scale.Override{Dir: o.Dir, Height: o.Height})
	}

	if hclCfg.Encoder != nil {
		cfg.Encoder = encode.Options{
			Binary:     hclCfg.Encoder.Binary,
			VideoCodec: hclCfg.Encoder.VideoCodec,
			CRF:        hclCfg.Encoder.CRF,
			Preset:     hclCfg.Encoder.Preset,
			AudioCodec: hclCfg.Encoder.AudioCodec,
		}
	}

	return cfg, nil
}
