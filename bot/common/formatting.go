package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatBalance formats a coin amount with thousand separators
func FormatBalance(balance int64) string {
	str := fmt.Sprintf("%d", balance)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatGameResult formats the settled outcome of a single wager
func FormatGameResult(won bool, stake, payout, newBalance int64) string {
	if won {
		return fmt.Sprintf("🎉 **You won %s coins!** New balance: **%s**",
			FormatBalance(payout), FormatBalance(newBalance))
	}
	return fmt.Sprintf("😔 **You lost %s coins.** New balance: **%s**",
		FormatBalance(stake), FormatBalance(newBalance))
}

// FormatPushResult formats a returned stake
func FormatPushResult(stake, newBalance int64) string {
	return fmt.Sprintf("🤝 **Push.** Your **%s** coin stake was returned. Balance: **%s**",
		FormatBalance(stake), FormatBalance(newBalance))
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that renders
// in the reader's local timezone. Format types: "t" short time, "d" short
// date, "f" date/time, "R" relative.
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
