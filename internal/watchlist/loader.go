package watchlist

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a watchlist YAML file and returns it with the raw bytes.
// SSOT 핵심: KnownFields(true)로 오타/미사용 필드 즉시 실패
func Load(path string) (*Watchlist, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var list Watchlist
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&list); err != nil {
		return nil, nil, err
	}

	if err := Validate(&list); err != nil {
		return nil, data, err
	}

	return &list, data, nil
}

// LoadOrDefault loads the file at path, falling back to the built-in
// trio when the file does not exist. Any other failure is returned:
// a present-but-broken watchlist should stop the run, not silently
// shrink the universe.
func LoadOrDefault(path string) (*Watchlist, error) {
	list, _, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return list, nil
}

// Hash generates a SHA256 hash of the watchlist (canonical JSON).
// 주의: map 대신 struct 사용으로 해시 재현성 보장
func Hash(list *Watchlist) (string, error) {
	jsonBytes, err := json.Marshal(list)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
