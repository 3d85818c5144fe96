package util

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// RecordingInfo ffprobe 读出的录像信息
type RecordingInfo struct {
	Duration  float64 `json:"duration"`
	Codec     string  `json:"codec"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Container string  `json:"container"`
}

type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
}

// ProbeRecording 没有视频流的文件按非法类型处理
func ProbeRecording(path string) (*RecordingInfo, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("probe recording: %w", err)
	}
	return parseProbe(raw)
}

func parseProbe(raw string) (*RecordingInfo, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("parse probe output: %w", err)
	}

	info := &RecordingInfo{}
	for _, stream := range out.Streams {
		if stream.CodecType == "video" {
			info.Codec = stream.CodecName
			info.Width = stream.Width
			info.Height = stream.Height
			break
		}
	}
	if info.Codec == "" {
		return nil, fmt.Errorf("%w: no video stream", ErrInvalidFileType)
	}

	// 部分容器不写 duration，按 0 处理
	info.Duration, _ = strconv.ParseFloat(out.Format.Duration, 64)
	info.Container, _, _ = strings.Cut(out.Format.FormatName, ",")
	return info, nil
}

// FFmpegVersion 健康检查用，返回版本行
func FFmpegVersion() (string, error) {
	out, err := exec.Command("ffmpeg", "-version", "-hide_banner").Output()
	if err != nil {
		return "", fmt.Errorf("ffmpeg not available: %w", err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return line, nil
}
