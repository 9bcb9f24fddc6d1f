package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CongDon1207/Four-Connect/internal/service/bot"
)

// difficultyFile is the YAML layout of a difficulty table:
//
//	levels:
//	  - level: 1
//	    algorithm: negamax
//	    depth: 1
type difficultyFile struct {
	Levels []difficultyLevel `yaml:"levels"`
}

type difficultyLevel struct {
	Level     int           `yaml:"level"`
	Algorithm bot.Algorithm `yaml:"algorithm"`
	Depth     int           `yaml:"depth"`
}

// ParseDifficultyTable decodes and validates a YAML difficulty table.
func ParseDifficultyTable(data []byte) (bot.DifficultyTable, error) {
	var file difficultyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse difficulty table: %w", err)
	}

	table := make(bot.DifficultyTable, len(file.Levels))
	for _, l := range file.Levels {
		if _, dup := table[l.Level]; dup {
			return nil, fmt.Errorf("difficulty level %d defined twice", l.Level)
		}
		table[l.Level] = bot.SearchConfig{Algorithm: l.Algorithm, Depth: l.Depth}
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// LoadDifficultyTable returns the table in path, or the default one when path is empty.
func LoadDifficultyTable(path string) (bot.DifficultyTable, error) {
	if path == "" {
		return bot.DefaultDifficultyTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read difficulty table %s: %w", path, err)
	}
	return ParseDifficultyTable(data)
}
