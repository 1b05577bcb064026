package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mySalesDesk/pkg/logger"

	"github.com/pobyzaarif/goshortcute"
)

// Shareable report names, the same identifiers the router exposes.
const (
	ShareCategories    = "categories"
	ShareDaily         = "daily"
	ShareOrders        = "orders"
	ShareProducts      = "products"
	ShareOrdersAverage = "orders-average"
	ShareTopCategories = "categories-top"
	ShareTopProducts   = "products-top"
)

var shareableReports = map[string]bool{
	ShareCategories:    true,
	ShareDaily:         true,
	ShareOrders:        true,
	ShareProducts:      true,
	ShareOrdersAverage: true,
	ShareTopCategories: true,
	ShareTopProducts:   true,
}

var ErrInvalidShareCode = errors.New("invalid or expired share code")

// CreateShareCode issues an expiring, AES-CBC encrypted code referencing a
// report, so a rendered report can be handed to someone without an account.
func (s *ReportService) CreateShareCode(reportName string) (string, time.Time, error) {
	if !shareableReports[reportName] {
		return "", time.Time{}, fmt.Errorf("unknown report: %s", reportName)
	}

	expAt := time.Now().Add(s.shareTTL)

	payload := fmt.Sprintf("%v|%v", reportName, expAt.Unix())
	encrypted, err := goshortcute.AESCBCEncrypt([]byte(payload), []byte(s.shareKey))
	if err != nil {
		logger.Error("Failed to encrypt share code", err)
		return "", time.Time{}, errors.New("failed to create share code")
	}

	return goshortcute.StringtoBase64Encode(encrypted), expAt, nil
}

// ResolveShareCode validates a share code and returns the report it names.
func (s *ReportService) ResolveShareCode(code string) (string, error) {
	strDecode := goshortcute.StringtoBase64Decode(code)

	payload, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.shareKey))
	if err != nil {
		logger.Error("Failed to decrypt share code", err)
		return "", ErrInvalidShareCode
	}

	parts := strings.Split(payload, "|")
	if len(parts) != 2 {
		return "", ErrInvalidShareCode
	}

	reportName := parts[0]
	if !shareableReports[reportName] {
		return "", ErrInvalidShareCode
	}

	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", ErrInvalidShareCode
	}

	if time.Now().After(time.Unix(ts, 0)) {
		return "", ErrInvalidShareCode
	}

	return reportName, nil
}
