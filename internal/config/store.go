package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"front-auditor/lib/configutil"
	"front-auditor/lib/telemetry"
)

const (
	report_store_load  = "store.load"
	report_store_write = "store.write"
)

const FileName = "config.json"

const (
	keyUsername      = "lastUsernameSession"
	keyAuthToken     = "ASPXAUTH"
	KeyViewState     = "VIEWSTATE"
	KeyButtonContext = "BUTTON_CONTEXT"
)

// DefaultViewState is the replay blob the portal's login form expects.
const DefaultViewState = "MsWi2YESAch8QFyJ8ArIGgsD9rfu0giqA8ZOmKPO74bbDXgANquKEU8Ee81zgar1YDjBaWknrCPLrRyTihsDT6iQ8zheRm9V1mXIQbGmARMeCpk/EzdsABrB6ycaB7LMVagAmNqMuchWQVtoAKFCOpcc3imIGu2FBwiB1wh0SsuqcgPsOoqgpApC3Kf6L/nUOx4as0D+xJh2GnSWIMh6W6y78jLqdl2TayNd5cbn/pre4gB9oADMoW4/lwf7h1ALjWwQZq1geXlpD+EZPrjprOubonNFKwQcq8EyazfzvyMBhtvLBhxGKuJLIK0ADJmE43UnZvKy/vQDIM3oFivy1YFCmxoh56UUBl0hjSkfLinu7dDnXOMUD0jzJzVS/WQ4"

const DefaultButtonContext = "login"

// Config is a snapshot of the persisted session state. Empty strings stand
// for JSON null.
type Config struct {
	LastUsernameSession string
	AuthToken           string
	// every other string-valued key, such as VIEWSTATE and BUTTON_CONTEXT
	StaticFormFields map[string]string
}

// DefaultPath returns config.json next to the running binary.
func DefaultPath() string {
	return filepath.Join(configutil.ExecutableDir(), FileName)
}

// Store owns config.json. Keys it does not know about are kept as raw JSON
// and written back untouched.
type Store struct {
	path  string
	tel   telemetry.API
	mutex sync.Mutex
	raw   map[string]json.RawMessage
}

func NewStore(path string, tel telemetry.API) *Store {
	return &Store{
		path: path,
		tel:  tel,
		raw:  defaults(),
	}
}

func (s *Store) Path() string {
	return s.path
}

func defaults() map[string]json.RawMessage {
	return map[string]json.RawMessage{
		keyUsername:      json.RawMessage("null"),
		keyAuthToken:     json.RawMessage("null"),
		KeyViewState:     mustString(DefaultViewState),
		KeyButtonContext: mustString(DefaultButtonContext),
	}
}

func mustString(s string) json.RawMessage {
	encoded, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return encoded
}

func (s *Store) read() (map[string]json.RawMessage, error) {
	contents, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	err = json.Unmarshal(contents, &raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("parse %s: not an object", s.path)
	}
	return raw, nil
}

func (s *Store) write(raw map[string]json.RawMessage) error {
	encoded, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	err = os.MkdirAll(filepath.Dir(s.path), 0755)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, append(encoded, '\n'), 0600)
}

// Load reads config.json. A missing or corrupt file is replaced by the
// defaults, the only error returned is a failure to write them, in which
// case the in-memory defaults are still usable.
func (s *Store) Load() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	raw, err := s.read()
	if err == nil {
		s.raw = raw
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		s.tel.ReportWarning(report_store_load, err)
	}

	s.raw = defaults()
	err = s.write(s.raw)
	if err != nil {
		s.tel.ReportBroken(report_store_write, err, s.path)
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

func decodeString(raw json.RawMessage) (string, bool) {
	var value *string
	err := json.Unmarshal(raw, &value)
	if err != nil || value == nil {
		return "", err == nil
	}
	return *value, true
}

func (s *Store) Get() Config {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cfg := Config{StaticFormFields: map[string]string{}}
	for k, v := range s.raw {
		value, ok := decodeString(v)
		if !ok {
			continue
		}
		switch k {
		case keyUsername:
			cfg.LastUsernameSession = value
		case keyAuthToken:
			cfg.AuthToken = value
		default:
			cfg.StaticFormFields[k] = value
		}
	}
	return cfg
}

// SetAuth records a new session identity and persists the whole config
// before returning. The file is re-read first so keys added by someone else
// since Load survive.
func (s *Store) SetAuth(username, token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	raw, err := s.read()
	if err != nil {
		raw = make(map[string]json.RawMessage, len(s.raw))
		for k, v := range s.raw {
			raw[k] = v
		}
	}
	raw[keyUsername] = mustString(username)
	raw[keyAuthToken] = mustString(token)

	err = s.write(raw)
	if err != nil {
		s.tel.ReportBroken(report_store_write, err, s.path)
		return fmt.Errorf("persist session: %w", err)
	}
	s.raw = raw
	return nil
}

func (s *Store) IsAuthenticated() bool {
	cfg := s.Get()
	return cfg.LastUsernameSession != "" && cfg.AuthToken != ""
}

// Username is the user of the last successful login.
func (s *Store) Username() string {
	return s.Get().LastUsernameSession
}
