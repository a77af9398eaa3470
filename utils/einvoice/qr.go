package einvoice

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

var (
	ErrNoQRCode      = errors.New("no QR code found")
	ErrNotSignedQR   = errors.New("QR code is not a signed e-invoice")
	ErrMissingQRData = errors.New("signed QR has no data claim")
)

// DecodeQR returns the text of the first QR code found in img.
func DecodeQR(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoQRCode, err)
	}
	return result.GetText(), nil
}

// signedQRData mirrors the JSON carried in the "data" claim of an IRP
// signed QR code.
type signedQRData struct {
	SellerGstin string  `json:"SellerGstin"`
	BuyerGstin  string  `json:"BuyerGstin"`
	DocNo       string  `json:"DocNo"`
	DocTyp      string  `json:"DocTyp"`
	DocDt       string  `json:"DocDt"`
	TotInvVal   float64 `json:"TotInvVal"`
	ItemCnt     int     `json:"ItemCnt"`
	MainHsnCode string  `json:"MainHsnCode"`
	Irn         string  `json:"Irn"`
	IrnDt       string  `json:"IrnDt"`
}

// ParseSignedQR reads the payload of a GST e-invoice QR. The signature is
// not verified: the IRP public key is not available to us, and the values
// are only used to cross-check the OCR result.
func ParseSignedQR(text string) (*dto.EInvoiceQR, error) {
	text = strings.TrimSpace(text)
	if strings.Count(text, ".") != 2 {
		return nil, ErrNotSignedQR
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(text, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSignedQR, err)
	}

	raw, ok := claims["data"].(string)
	if !ok || raw == "" {
		return nil, ErrMissingQRData
	}

	var data signedQRData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to parse QR data: %w", err)
	}

	return &dto.EInvoiceQR{
		SellerGSTIN: data.SellerGstin,
		BuyerGSTIN:  data.BuyerGstin,
		DocNo:       data.DocNo,
		DocType:     data.DocTyp,
		DocDate:     data.DocDt,
		TotalValue:  data.TotInvVal,
		ItemCount:   data.ItemCnt,
		MainHSNCode: data.MainHsnCode,
		IRN:         data.Irn,
		IRNDate:     data.IrnDt,
	}, nil
}

// Scan decodes and parses the e-invoice QR in img in one step.
func Scan(img image.Image) (*dto.EInvoiceQR, error) {
	text, err := DecodeQR(img)
	if err != nil {
		return nil, err
	}
	return ParseSignedQR(text)
}
