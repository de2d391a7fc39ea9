package server

import (
	"errors"
	"fmt"
	"strings"
)

const (
	maxNameLength = 20
	maxWordLength = 50
)

func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errors.New("name is required")
	}
	if len(trimmed) > maxNameLength {
		return "", fmt.Errorf("name must be %d characters or fewer", maxNameLength)
	}
	return trimmed, nil
}

func validateWord(word string) (string, error) {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" || len(trimmed) > maxWordLength {
		return "", ErrInvalidWord
	}
	return trimmed, nil
}

// isRelatedWord guards against giveaway submissions: the word must neither
// contain nor be contained in the secret word, case-insensitively.
func isRelatedWord(word, secret string) bool {
	lowerWord := strings.ToLower(word)
	lowerSecret := strings.ToLower(secret)
	return strings.Contains(lowerWord, lowerSecret) || strings.Contains(lowerSecret, lowerWord)
}

func normalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validRoomCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
