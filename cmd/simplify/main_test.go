package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"medsimplify/internal/config"
	"medsimplify/internal/core"
	"medsimplify/internal/db"
	"medsimplify/internal/metrics"
	"medsimplify/mocks"
	"medsimplify/pkg"
)

func TestParseFlags(t *testing.T) {
	cfg := config.Config{OpenAIModel: "gpt-3.5-turbo", DefaultTemperature: 0.3}

	o, err := parseFlags([]string{"-sample", "2", "-audience", "esl"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, o.sample)
	assert.Equal(t, "gpt-3.5-turbo", o.model)
	assert.Equal(t, 0.3, o.temperature)

	_, err = parseFlags([]string{"-sample", "1", "-file", "note.txt"}, cfg)
	assert.Error(t, err)
	_, err = parseFlags([]string{"-temperature", "2.5"}, cfg)
	assert.Error(t, err)
}

func TestReadNote(t *testing.T) {
	note, err := readNote(options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultNote, note)

	note, err = readNote(options{file: "-"}, strings.NewReader("Acute otitis media."))
	require.NoError(t, err)
	assert.Equal(t, "Acute otitis media.", note)

	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("Benign essential tremor."), 0o600))
	note, err = readNote(options{file: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Benign essential tremor.", note)

	second, _ := core.SampleByIndex(2)
	note, err = readNote(options{sample: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, second.Note, note)

	_, err = readNote(options{sample: 99}, nil)
	assert.Error(t, err)
}

func TestStrategies(t *testing.T) {
	all, err := strategies("ALL")
	require.NoError(t, err)
	assert.Equal(t, pkg.Strategies(), all)

	one, err := strategies("Chain of Thought")
	require.NoError(t, err)
	assert.Equal(t, []pkg.Strategy{pkg.StrategyChainOfThought}, one)

	_, err = strategies("majority_vote")
	assert.ErrorIs(t, err, pkg.ErrUnknownStrategy)
}

func TestSimplifyAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	history := db.NewMemoryStore()
	simplifier := core.NewSimplifier(client, metrics.NewEvaluator(nil), history, zerolog.Nop())

	client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("Your blood sugar is high.", nil).Times(3)
	client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", errors.New("timeout"))

	export := filepath.Join(t.TempDir(), "history.csv")
	var out bytes.Buffer
	err := simplifyAll(context.Background(), &out, simplifier, history, core.DefaultNote,
		pkg.AudienceLowLiteracy, pkg.Strategies(), options{model: "gpt-3.5-turbo", temperature: 0.3, exportPath: export})
	require.NoError(t, err)

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "Your blood sugar is high."))
	assert.Contains(t, text, "error: ")
	assert.Contains(t, text, "== Summary ==")
	assert.Contains(t, text, "Readability (0-100)")

	csv, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(csv)), "\n"), 4)
}

func TestSimplifyAll_AllFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	simplifier := core.NewSimplifier(client, metrics.NewEvaluator(nil), nil, zerolog.Nop())
	client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", errors.New("unauthorized"))

	var out bytes.Buffer
	err := simplifyAll(context.Background(), &out, simplifier, db.NewMemoryStore(), "Gout flare.",
		pkg.AudienceGeneral, []pkg.Strategy{pkg.StrategyFewShot}, options{model: "gpt-3.5-turbo"})
	assert.Error(t, err)
}
