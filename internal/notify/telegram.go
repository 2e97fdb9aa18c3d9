package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"mkt-settle-api/internal/config"
)

type TelegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
	Parse  string `json:"parse_mode"`
}

func init() {
	_ = godotenv.Load() // 自动加载 .env 文件
}

func SendTelegramMessage(chatID string, content string) error {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		botToken = config.C.Telegram.Token
	}
	if botToken == "" {
		return fmt.Errorf("missing TELEGRAM_BOT_TOKEN in env")
	}

	msg := TelegramMessage{
		ChatID: chatID,
		Text:   content,
		Parse:  "Markdown",
	}
	body, _ := json.Marshal(msg)
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", botToken)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {

		}
	}(resp.Body)
	return nil
}

// 异步发送错误信息
func NotifySendMsgToTG(chatId string, content string) {
	go func() {
		if err := SendTelegramMessage(chatId, content); err != nil {
			log.Printf("Telegram 消息发送失败: %v", err)
		}
	}()
}

// Notify 统一报警出口，urgent 为 true 时同步发送
func Notify(chatID, level, title, content string, urgent bool) {
	if !config.C.Telegram.Enable {
		log.Printf("[NOTIFY-%s] %s: %s", level, title, content)
		return
	}
	if chatID == "" {
		chatID = config.C.Telegram.ChatId
	}

	var tag string
	switch level {
	case "error":
		tag = "🚨"
	case "warn":
		tag = "⚠️"
	default:
		tag = "ℹ️"
	}
	text := fmt.Sprintf("%s *%s*\n%s", tag, escapeMarkdown(title), content)

	if urgent {
		if err := SendTelegramMessage(chatID, text); err != nil {
			log.Printf("Telegram 消息发送失败: %v", err)
		}
		return
	}
	NotifySendMsgToTG(chatID, text)
}
