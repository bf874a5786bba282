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

// Package encode wraps the external encoder process behind a narrow
// transform capability so the rest of the system never builds encoder
// command lines itself.
package encode

import "context"

// 🎬 Transformer runs one synchronous transform of inputPath into
// outputPath. maxHeight > 0 requests aspect-preserving downscaling bounded
// to that height; 0 means re-encode without scaling. The call blocks until
// the transform finishes.
type Transformer interface {
	Run(ctx context.Context, inputPath, outputPath string, maxHeight int) error
}

// 🔧 Options holds the encoder invocation parameters. These are owned
// here: the walker and the override resolver never see codec settings.
type Options struct {
	Binary     string `json:"binary,omitempty"      yaml:"binary,omitempty"`
	VideoCodec string `json:"video_codec,omitempty" yaml:"video_codec,omitempty"`
	CRF        int    `json:"crf,omitempty"         yaml:"crf,omitempty"`
	Preset     string `json:"preset,omitempty"      yaml:"preset,omitempty"`
	AudioCodec string `json:"audio_codec,omitempty" yaml:"audio_codec,omitempty"`
}

// WithDefaults returns a copy of o with unset fields filled in.
func (o Options) WithDefaults() Options {
	if o.Binary == "" {
		o.Binary = "ffmpeg"
	}
	if o.VideoCodec == "" {
		o.VideoCodec = "libx265"
	}
	if o.CRF == 0 {
		o.CRF = 28
	}
	if o.Preset == "" {
		o.Preset = "fast"
	}
	if o.AudioCodec == "" {
		o.AudioCodec = "copy"
	}
	return o
}
