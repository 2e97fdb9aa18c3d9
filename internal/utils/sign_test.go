package utils

import (
	"strings"
	"testing"
)

func TestGenerateSign_SortedAndFiltered(t *testing.T) {
	params := map[string]string{
		"payout_id": "900123",
		"amount":    "150.00",
		"currency":  "USD",
		"sign":      "SHOULD_BE_IGNORED",
		"remark":    "",
	}
	got := GenerateSign(params, "secret-key")

	// 同参数不同插入顺序必须得到同一签名
	again := GenerateSign(map[string]string{
		"currency":  "USD",
		"amount":    "150.00",
		"payout_id": "900123",
	}, "secret-key")
	if got != again {
		t.Errorf("sign not stable: %s vs %s", got, again)
	}
	if got != strings.ToUpper(got) {
		t.Errorf("sign must be upper case: %s", got)
	}
	if len(got) != 32 {
		t.Errorf("md5 hex length = %d, want 32", len(got))
	}
}

func TestVerifySign(t *testing.T) {
	params := map[string]string{
		"payout_id": "900123",
		"amount":    "150.00",
	}
	params["sign"] = GenerateSign(params, "secret-key")

	if !VerifySign(params, "secret-key") {
		t.Error("valid sign rejected")
	}
	// 小写签名也应通过
	params["sign"] = strings.ToLower(params["sign"])
	if !VerifySign(params, "secret-key") {
		t.Error("lower case sign rejected")
	}
	if VerifySign(params, "wrong-key") {
		t.Error("wrong key accepted")
	}
	delete(params, "sign")
	if VerifySign(params, "secret-key") {
		t.Error("missing sign accepted")
	}
}

func TestGenerateSign_KeyMatters(t *testing.T) {
	params := map[string]string{"amount": "10.00"}
	if GenerateSign(params, "k1") == GenerateSign(params, "k2") {
		t.Error("different secrets must produce different signs")
	}
}

func TestVerifyHmacSHA256(t *testing.T) {
	body := []byte(`{"category_id":101,"rate":"4"}`)
	sig := HmacSHA256Hex(body, "admin-secret")

	if len(sig) != 64 {
		t.Errorf("sha256 hex length = %d, want 64", len(sig))
	}
	if !VerifyHmacSHA256(body, "admin-secret", sig) {
		t.Error("valid hmac rejected")
	}
	if !VerifyHmacSHA256(body, "admin-secret", strings.ToUpper(sig)) {
		t.Error("upper case hmac rejected")
	}
	if VerifyHmacSHA256(body, "other-secret", sig) {
		t.Error("wrong secret accepted")
	}
	if VerifyHmacSHA256([]byte(`{"category_id":101,"rate":"5"}`), "admin-secret", sig) {
		t.Error("tampered body accepted")
	}
	if VerifyHmacSHA256(body, "admin-secret", "") {
		t.Error("empty hmac accepted")
	}
}
