package sheet

import (
	"encoding/json"
	"fmt"

	"cofoodie/internal/sheet/sheetdb"
)

// readableColumns derives the human-inspection columns for one row. They
// exist purely so the rows table reads like a spreadsheet; nothing ever
// parses them back, so a payload that fails to decode simply yields none.
func readableColumns(sheetName string, payload json.RawMessage) []string {
	var item map[string]any
	if err := json.Unmarshal(payload, &item); err != nil {
		return nil
	}

	str := func(key string) string {
		v, ok := item[key]
		if !ok || v == nil {
			return ""
		}
		switch t := v.(type) {
		case string:
			return t
		case float64:
			if t == float64(int64(t)) {
				return fmt.Sprintf("%d", int64(t))
			}
			return fmt.Sprintf("%v", t)
		default:
			return fmt.Sprintf("%v", t)
		}
	}

	switch sheetName {
	case sheetdb.SheetOrders:
		paid := "Unpaid"
		if b, _ := item["isPaid"].(bool); b {
			paid = "Paid"
		}
		return []string{
			str("dateStr"),
			str("employeeName"),
			str("categoryLabel"),
			str("totalAmount"),
			str("status"),
			paid,
		}
	case sheetdb.SheetEmployees:
		return []string{str("name")}
	case sheetdb.SheetMenus:
		shop := ""
		if cfg, ok := item["config"].(map[string]any); ok {
			shop, _ = cfg["shopName"].(string)
		}
		return []string{str("label"), shop}
	case sheetdb.SheetAdmins:
		return []string{str("username"), str("name")}
	}
	return nil
}
