package prompt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/myelo-dev/myelo-installer/internal/messages"
)

// Asker runs validated prompt loops over a UI.
type Asker struct {
	UI UI
	// Out receives re-prompt notices; defaults to stderr.
	Out io.Writer
	// LookupEnv resolves environment overrides; defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

func (a *Asker) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stderr
}

func (a *Asker) lookupEnv(key string) (string, bool) {
	if a.LookupEnv != nil {
		return a.LookupEnv(key)
	}
	return os.LookupEnv(key)
}

// ParseYesNo maps an answer to a boolean. Accepted forms are y, yes, n and
// no, case-insensitive; anything else reports ok=false.
func ParseYesNo(answer string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}

// YesNo asks a yes/no question and loops until the answer parses. When
// envKey is non-empty and set in the environment to a valid answer, it
// pre-seeds the result without any interaction (unattended installs).
func (a *Asker) YesNo(question string, envKey string) (bool, error) {
	if envKey != "" {
		if raw, found := a.lookupEnv(envKey); found {
			if value, ok := ParseYesNo(raw); ok {
				return value, nil
			}
		}
	}
	title := question + " [yes|no]"
	for {
		var answer string
		if err := a.UI.Input(title, &answer); err != nil {
			return false, err
		}
		if value, ok := ParseYesNo(answer); ok {
			return value, nil
		}
		_, _ = fmt.Fprintln(a.out(), messages.PromptInvalidYesNo)
	}
}

// FreeText asks a free-text question and loops until the answer is
// non-empty, unless allowEmpty is set.
func (a *Asker) FreeText(question string, allowEmpty bool) (string, error) {
	for {
		var answer string
		if err := a.UI.Input(question, &answer); err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if answer != "" || allowEmpty {
			return answer, nil
		}
		_, _ = fmt.Fprintln(a.out(), messages.PromptEmptyRejected)
	}
}
