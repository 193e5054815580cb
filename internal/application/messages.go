package application

import "fmt"

// User-facing messages, in Thai like the rest of the shop. Specific where
// the user can act on it, generic where detail would leak internals.
const (
	msgInvalidLink      = "รูปแบบลิงก์ไม่ถูกต้อง กรุณาตรวจสอบลิงก์อีกครั้ง"
	msgAccountNotFound  = "ไม่พบผู้ใช้ในระบบ กรุณาล็อกอินใหม่"
	msgVoucherUsed      = "ลิงก์นี้ถูกใช้งานไปแล้ว"
	msgTimeout          = "หมดเวลาเชื่อมต่อ กรุณาลองใหม่ภายหลัง"
	msgUnreachable      = "ไม่สามารถเชื่อมต่อเซิร์ฟเวอร์ได้ กรุณาลองใหม่ภายหลัง"
	msgProviderDown     = "เซิร์ฟเวอร์ TrueMoney ขัดข้อง กรุณาลองใหม่ภายหลัง"
	msgBadVoucherLink   = "ลิงก์ไม่ถูกต้องหรือใช้งานไปแล้ว"
	msgVoucherNotFound  = "ไม่พบซองอังเปาที่ระบุ"
	msgRedemptionFailed = "ไม่สามารถเติมเงินได้"
	msgInvalidAmount    = "จำนวนเงินไม่ถูกต้อง"
	msgGenericFailure   = "เกิดข้อผิดพลาดในการเติมเงิน"
	msgMissingLink      = "กรุณากรอกลิงก์ซองอังเปา"
	msgNotTrueMoneyLink = "กรุณากรอกลิงก์ TrueMoney ที่ถูกต้อง"
	msgMissingIdentity  = "ไม่พบ Steam ID กรุณาล็อกอินใหม่"
)

// MissingLinkMessage and friends are used by the request layer's
// pre-validation, mirroring the shop's form validation.
func MissingLinkMessage() string      { return msgMissingLink }
func NotTrueMoneyLinkMessage() string { return msgNotTrueMoneyLink }
func MissingIdentityMessage() string  { return msgMissingIdentity }

// SuccessMessage renders the confirmation shown after a credited top-up.
func SuccessMessage(amount, newBalance float64) string {
	return fmt.Sprintf("เติมเงินสำเร็จ %s บาท (ยอดเงินปัจจุบัน: %s บาท)",
		formatBaht(amount), formatBaht(newBalance))
}

func formatBaht(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
