package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"wordsteady/internal/logger"
)

const (
	ttsRequestTimeout = 10 * time.Second
	googleTTSURL      = "https://translate.google.com/translate_tts"
)

// TTSService produces and caches a spoken clip of each day's word
type TTSService struct {
	audioDir string
	baseURL  string
	client   *http.Client

	// one download per word at a time
	mu       sync.Mutex
	inflight map[string]*sync.Mutex
}

// NewTTSService creates a new TTS service writing clips into audioDir
func NewTTSService(audioDir string) *TTSService {
	return &TTSService{
		audioDir: audioDir,
		baseURL:  googleTTSURL,
		client:   &http.Client{Timeout: ttsRequestTimeout},
		inflight: make(map[string]*sync.Mutex),
	}
}

// ClipFilename is the cache filename for word
func ClipFilename(word string) string {
	sanitized := strings.ToLower(strings.TrimSpace(word))
	sanitized = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, sanitized)
	return fmt.Sprintf("word_%s.mp3", sanitized)
}

// Clip returns the path of the pronunciation clip for word, generating it on
// first use
func (s *TTSService) Clip(ctx context.Context, word string) (string, error) {
	filename := ClipFilename(word)
	path := filepath.Join(s.audioDir, filename)

	lock := s.lockFor(filename)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(s.audioDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}
	if err := s.generateUsingGoogleTTS(ctx, strings.ToLower(word), path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}
	logger.Info("pronunciation clip generated", "word", word, "file", filename)
	return path, nil
}

func (s *TTSService) lockFor(filename string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.inflight[filename]
	if !ok {
		m = &sync.Mutex{}
		s.inflight[filename] = m
	}
	return m
}

// generateUsingGoogleTTS uses Google Translate's text-to-speech endpoint
func (s *TTSService) generateUsingGoogleTTS(ctx context.Context, text, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by Google)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Write to a temp file first so a failed download never leaves a partial clip
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".clip-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return os.Rename(tmp.Name(), outputPath)
}
