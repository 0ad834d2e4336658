package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxDownload is the Bot API's own limit for getFile.
const maxDownload = 20 << 20

func (app *BotApp) download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := app.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := app.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDownload))
}
