package helpers

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// GravatarURL ссылка на аватар по почте пользователя
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=identicon", hex.EncodeToString(sum[:]))
}

// SocialURLs ссылки на профили по именам пользователей, пустое имя остается пустым
type SocialURLs struct {
	Github    string
	Gitlab    string
	Bitbucket string
	Linkedin  string
}

func BuildSocialURLs(github, gitlab, bitbucket, linkedin string) SocialURLs {
	result := SocialURLs{}
	if github = strings.TrimSpace(github); github != "" {
		result.Github = "https://github.com/" + github
	}
	if gitlab = strings.TrimSpace(gitlab); gitlab != "" {
		result.Gitlab = "https://gitlab.com/" + gitlab
	}
	if bitbucket = strings.TrimSpace(bitbucket); bitbucket != "" {
		result.Bitbucket = "https://bitbucket.org/" + bitbucket + "/"
	}
	if linkedin = strings.TrimSpace(linkedin); linkedin != "" {
		result.Linkedin = "https://www.linkedin.com/in/" + linkedin + "/"
	}
	return result
}

// Unique убирает повторы, сохраняя порядок
func Unique(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	result := make([]string, 0, len(list))
	for _, item := range list {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}
