package model

import "testing"

func TestIdentityKey_Policies(t *testing.T) {
	cohort := 14

	// phone 策略只看手机号
	if got := IdentityKey("phone", "010-1234-5678", "kim@test.com", &cohort); got != "010-1234-5678" {
		t.Errorf("期望010-1234-5678，实际=%s", got)
	}

	// email_phone 策略邮箱统一小写
	got := IdentityKey("email_phone", "010-1234-5678", " Kim@Test.com ", &cohort)
	if got != "kim@test.com|010-1234-5678" {
		t.Errorf("期望kim@test.com|010-1234-5678，实际=%s", got)
	}

	// phone_cohort 策略带期数；期数缺失按 0
	if got := IdentityKey("phone_cohort", "010-1234-5678", "", &cohort); got != "010-1234-5678|14" {
		t.Errorf("期望010-1234-5678|14，实际=%s", got)
	}
	if got := IdentityKey("phone_cohort", "010-1234-5678", "", nil); got != "010-1234-5678|0" {
		t.Errorf("期望010-1234-5678|0，实际=%s", got)
	}
}

func TestApplicant_Key(t *testing.T) {
	cohort := 5
	a := &Applicant{Phone: "010-1111-2222", Email: "lee@test.com", CohortNumber: &cohort}

	if got := a.Key("phone_cohort"); got != "010-1111-2222|5" {
		t.Errorf("期望010-1111-2222|5，实际=%s", got)
	}
	if got := a.Key("phone"); got != "010-1111-2222" {
		t.Errorf("期望010-1111-2222，实际=%s", got)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusApplying, StatusAccepted, StatusConsidering, StatusRegistered, StatusCanceled} {
		if !ValidStatus(s) {
			t.Errorf("%s 应为合法状态", s)
		}
	}
	if ValidStatus("pending") {
		t.Error("pending 不是合法状态")
	}
	if ValidStatus("") {
		t.Error("空串不是合法状态")
	}
}
