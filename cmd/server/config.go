package main

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Host                 string        `env:"CHAT_HOST,default=localhost"`
	Port                 int           `env:"CHAT_PORT,default=8080"`
	LogLevel             string        `env:"LOG_LEVEL,required=true"`
	SubscriberBufferSize int           `env:"SUBSCRIBER_BUFFER_SIZE,required=true" validate:"gt=0"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=30s"`
	CensoredWords        string        `env:"CENSORED_WORDS"`
	CensorCharacter      string        `env:"CENSOR_CHARACTER,default=*" validate:"len=1"`
}

// censoredWordList splits the configured comma-separated dictionary.
// An empty or blank variable disables moderation entirely.
func (c Config) censoredWordList() []string {
	var words []string
	for _, word := range strings.Split(c.CensoredWords, ",") {
		if word = strings.TrimSpace(word); word != "" {
			words = append(words, word)
		}
	}
	return words
}

func characterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CENSOR_CHARACTER must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
