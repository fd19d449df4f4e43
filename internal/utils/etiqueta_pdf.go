package utils

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// RenderEtiquetaPDF carrega a página de etiqueta de postagem do frontend
// e imprime em PDF para anexar no e-mail de logística reversa.
// frontendURL deve se parecer com: http://localhost:3000/etiqueta
func RenderEtiquetaPDF(frontendURL, devolucaoID, codigoRastreio string) ([]byte, error) {
	q := url.Values{}
	q.Set("id", devolucaoID)
	q.Set("rastreio", codigoRastreio)

	fullURL := fmt.Sprintf("%s?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout para não travar o worker
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(4.1).
				WithPaperHeight(5.8).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
