package terminal

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScript reports a script whose delays cannot be replayed in order.
var ErrInvalidScript = errors.New("invalid terminal script")

// Line is one scripted terminal line. Delay is measured from run start.
type Line struct {
	Text  string
	Delay time.Duration
}

// IsCommand reports whether the line is typed character by character.
func (l Line) IsCommand() bool {
	return strings.HasPrefix(l.Text, "$")
}

// Script is the ordered list of lines a Sequencer replays.
type Script struct {
	Lines []Line
}

// Validate checks that delays are non-negative and non-decreasing.
func (s Script) Validate() error {
	var prev time.Duration
	for i, line := range s.Lines {
		if line.Delay < 0 {
			return fmt.Errorf("%w: line %d has negative delay %s", ErrInvalidScript, i, line.Delay)
		}
		if line.Delay < prev {
			return fmt.Errorf("%w: line %d delay %s is before line %d delay %s", ErrInvalidScript, i, line.Delay, i-1, prev)
		}
		prev = line.Delay
	}
	return nil
}

// DefaultScript returns the portfolio's built-in terminal session.
func DefaultScript() Script {
	return Script{Lines: []Line{
		{Text: "$ whoami", Delay: 0},
		{Text: "> 허대범 (Daebeom Heo)", Delay: 500 * time.Millisecond},
		{Text: "> Full Stack Developer", Delay: 800 * time.Millisecond},
		{Text: "", Delay: 1200 * time.Millisecond},
		{Text: "$ cat ~/.profile", Delay: 1400 * time.Millisecond},
		{Text: `> "나는 뼛속까지 개발자다"`, Delay: 1800 * time.Millisecond},
		{Text: "> 문제를 코드로 해결하고, 아이디어를 현실로 만듭니다.", Delay: 2200 * time.Millisecond},
		{Text: "", Delay: 2600 * time.Millisecond},
		{Text: "$ echo $TECH_STACK", Delay: 2800 * time.Millisecond},
		{Text: "> Frontend: React, Next.js, TypeScript", Delay: 3200 * time.Millisecond},
		{Text: "> Backend: Node.js, Express, NestJS", Delay: 3500 * time.Millisecond},
		{Text: "> Database: MongoDB, PostgreSQL, Redis", Delay: 3800 * time.Millisecond},
		{Text: "> DevOps: Docker, AWS, Vercel", Delay: 4100 * time.Millisecond},
		{Text: "", Delay: 4500 * time.Millisecond},
		{Text: "$ ls -la ~/achievements", Delay: 4700 * time.Millisecond},
		{Text: "> 💼 3+ years of professional experience", Delay: 5100 * time.Millisecond},
		{Text: "> 🚀 10+ production-ready projects", Delay: 5400 * time.Millisecond},
		{Text: "> ⭐ 1000+ GitHub contributions", Delay: 5700 * time.Millisecond},
		{Text: "", Delay: 6100 * time.Millisecond},
	}}
}

type scriptFile struct {
	Lines []scriptFileLine `yaml:"lines"`
}

type scriptFileLine struct {
	Text    string `yaml:"text"`
	DelayMS int64  `yaml:"delay_ms"`
}

// ParseScript decodes a YAML script document and validates it.
func ParseScript(data []byte) (Script, error) {
	var file scriptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Script{}, fmt.Errorf("decode script: %w", err)
	}
	script := Script{Lines: make([]Line, 0, len(file.Lines))}
	for _, l := range file.Lines {
		script.Lines = append(script.Lines, Line{
			Text:  l.Text,
			Delay: time.Duration(l.DelayMS) * time.Millisecond,
		})
	}
	if err := script.Validate(); err != nil {
		return Script{}, err
	}
	return script, nil
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script %s: %w", path, err)
	}
	script, err := ParseScript(data)
	if err != nil {
		return Script{}, fmt.Errorf("load script %s: %w", path, err)
	}
	return script, nil
}

// MarshalYAML renders the script in the same shape LoadScript reads.
func (s Script) MarshalYAML() (any, error) {
	var file scriptFile
	for _, l := range s.Lines {
		file.Lines = append(file.Lines, scriptFileLine{Text: l.Text, DelayMS: l.Delay.Milliseconds()})
	}
	return file, nil
}
