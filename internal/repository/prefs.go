package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository/storage"
)

// Preference keys, matching what the web client kept in local storage.
const (
	keySoundEnabled = "soundEnabled"
	keyTheme        = "theme"
	keyRecentEmojis = "recentEmojis"
	keyChatSettings = "chatSettings"
)

const defaultTheme = "dark"

// KVStorage is the flat key/value surface both backends expose.
type KVStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// PrefsRepository persists the per-user preferences. Readers return the
// fresh-install default when a key has never been written.
type PrefsRepository interface {
	SoundEnabled(ctx context.Context) (bool, error)
	SaveSoundEnabled(ctx context.Context, enabled bool) error
	Theme(ctx context.Context) (string, error)
	SaveTheme(ctx context.Context, theme string) error
	RecentEmojis(ctx context.Context) ([]string, error)
	SaveRecentEmojis(ctx context.Context, emojis []string) error
	ChatSettings(ctx context.Context) (entity.ChatSettings, error)
	SaveChatSettings(ctx context.Context, settings entity.ChatSettings) error
}

type dbPrefs struct {
	kv KVStorage
}

func NewPrefsRepository(kv KVStorage) PrefsRepository {
	return &dbPrefs{kv: kv}
}

func (that *dbPrefs) SoundEnabled(ctx context.Context) (bool, error) {
	value, err := that.kv.Get(ctx, keySoundEnabled)

	if errors.Is(err, storage.ErrNotFound) {
		return true, nil
	}

	if err != nil {
		return true, fmt.Errorf("could not read sound preference: %w", err)
	}

	return value == "true", nil
}

func (that *dbPrefs) SaveSoundEnabled(ctx context.Context, enabled bool) error {
	if err := that.kv.Set(ctx, keySoundEnabled, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("could not write sound preference: %w", err)
	}

	return nil
}

func (that *dbPrefs) Theme(ctx context.Context) (string, error) {
	value, err := that.kv.Get(ctx, keyTheme)

	if errors.Is(err, storage.ErrNotFound) {
		return defaultTheme, nil
	}

	if err != nil {
		return defaultTheme, fmt.Errorf("could not read theme: %w", err)
	}

	return value, nil
}

func (that *dbPrefs) SaveTheme(ctx context.Context, theme string) error {
	if err := that.kv.Set(ctx, keyTheme, theme); err != nil {
		return fmt.Errorf("could not write theme: %w", err)
	}

	return nil
}

func (that *dbPrefs) RecentEmojis(ctx context.Context) ([]string, error) {
	value, err := that.kv.Get(ctx, keyRecentEmojis)

	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("could not read recent emojis: %w", err)
	}

	var emojis []string
	if err = json.Unmarshal([]byte(value), &emojis); err != nil {
		return nil, fmt.Errorf("could not unmarshal recent emojis: %w", err)
	}

	return emojis, nil
}

func (that *dbPrefs) SaveRecentEmojis(ctx context.Context, emojis []string) error {
	value, err := json.Marshal(emojis)
	if err != nil {
		return fmt.Errorf("could not marshal recent emojis: %w", err)
	}

	if err = that.kv.Set(ctx, keyRecentEmojis, string(value)); err != nil {
		return fmt.Errorf("could not write recent emojis: %w", err)
	}

	return nil
}

func (that *dbPrefs) ChatSettings(ctx context.Context) (entity.ChatSettings, error) {
	value, err := that.kv.Get(ctx, keyChatSettings)

	if errors.Is(err, storage.ErrNotFound) {
		return entity.DefaultChatSettings(), nil
	}

	if err != nil {
		return entity.DefaultChatSettings(), fmt.Errorf("could not read chat settings: %w", err)
	}

	var settings entity.ChatSettings
	if err = json.Unmarshal([]byte(value), &settings); err != nil {
		return entity.DefaultChatSettings(), fmt.Errorf("could not unmarshal chat settings: %w", err)
	}

	return settings, nil
}

func (that *dbPrefs) SaveChatSettings(ctx context.Context, settings entity.ChatSettings) error {
	value, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("could not marshal chat settings: %w", err)
	}

	if err = that.kv.Set(ctx, keyChatSettings, string(value)); err != nil {
		return fmt.Errorf("could not write chat settings: %w", err)
	}

	return nil
}
