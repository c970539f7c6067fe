package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/luthersystems/lcalc/config"
	"github.com/peterh/liner"
)

// NewEditor returns a terminal LineReader for the named editor.  When
// history is not empty lines are loaded from and saved to that file.
func NewEditor(editor, prompt, history string) (LineReader, error) {
	switch editor {
	case "", config.EditorReadline:
		return NewReadline(prompt, history)
	case config.EditorLiner:
		return NewLiner(prompt, history), nil
	default:
		return nil, fmt.Errorf("unknown editor: %q", editor)
	}
}

// newLineReader returns the editor configured by c when in is a terminal and
// a plain line scanner otherwise.
func newLineReader(c *config.Config, in *os.File) (LineReader, error) {
	if !readline.IsTerminal(int(in.Fd())) {
		return NewScanner(in, "", nil), nil
	}
	return NewEditor(c.Editor, c.Prompt, c.HistoryPath())
}

type readlineReader struct {
	rl *readline.Instance
}

// NewReadline returns a LineReader backed by github.com/chzyer/readline.
func NewReadline(prompt, history string) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 prompt,
		HistoryFile:            history,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, err
	}
	return &readlineReader{rl: rl}, nil
}

func (r *readlineReader) ReadLine() (string, error) {
	line, err := r.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", ErrInterrupt
	}
	return line, err
}

func (r *readlineReader) AddHistory(line string) {
	// history is best effort
	_ = r.rl.SaveHistory(line)
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

type linerReader struct {
	state   *liner.State
	prompt  string
	history string
}

// NewLiner returns a LineReader backed by github.com/peterh/liner.  Ctrl-C
// abandons the current line.
func NewLiner(prompt, history string) LineReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &linerReader{state: state, prompt: prompt, history: history}
}

func (r *linerReader) ReadLine() (string, error) {
	line, err := r.state.Prompt(r.prompt)
	if err == liner.ErrPromptAborted {
		return "", ErrInterrupt
	}
	return line, err
}

func (r *linerReader) AddHistory(line string) {
	r.state.AppendHistory(line)
}

func (r *linerReader) Close() error {
	if r.history != "" {
		if f, err := os.Create(r.history); err == nil {
			_, _ = r.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return r.state.Close()
}

type scanReader struct {
	s      *bufio.Scanner
	prompt string
	w      io.Writer
}

// NewScanner returns a LineReader that reads lines from r without any line
// editing, writing prompt to w before each line when w is not nil.  Closing
// the LineReader does not close r.
func NewScanner(r io.Reader, prompt string, w io.Writer) LineReader {
	return &scanReader{s: bufio.NewScanner(r), prompt: prompt, w: w}
}

func (r *scanReader) ReadLine() (string, error) {
	if r.w != nil {
		fmt.Fprint(r.w, r.prompt)
	}
	if r.s.Scan() {
		return r.s.Text(), nil
	}
	if err := r.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scanReader) AddHistory(string) {}

func (r *scanReader) Close() error {
	return nil
}
