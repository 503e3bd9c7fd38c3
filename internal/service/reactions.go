package service

import (
	"github.com/samber/lo"

	"chat_web/internal/models"
)

// ApplyToggle 計算一次 reaction 切換後的新集合，不修改輸入：
//  1. emoji 不存在 -> 建立只含 username 的新條目
//  2. username 已在條目中 -> 移除；列表清空時整個 emoji 條目刪除
//  3. 否則 -> 將 username 附加到列表尾端
//
// 同一 (emoji, username) 連續切換兩次會回到原本的集合。
func ApplyToggle(current models.ReactionSet, emoji, username string) models.ReactionSet {
	next := make(models.ReactionSet, len(current))
	for e, users := range current {
		next[e] = append([]string(nil), users...)
	}

	users, ok := next[emoji]
	switch {
	case !ok:
		next[emoji] = []string{username}
	case lo.Contains(users, username):
		remaining := lo.Without(users, username)
		if len(remaining) == 0 {
			delete(next, emoji)
		} else {
			next[emoji] = remaining
		}
	default:
		next[emoji] = append(users, username)
	}

	return next
}
