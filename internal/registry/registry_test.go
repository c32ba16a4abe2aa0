package registry

import "testing"

func TestResolveCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"frontend", "frontend"},
		{"fe", "frontend"},
		{"FE", "frontend"},
		{"design", "uxui"},
		{"unity", "game"},
		{"aiservice", "ai-service"},
	}

	for _, tt := range tests {
		got, ok := ResolveCode(tt.code)
		if !ok {
			t.Errorf("%s 应可解析", tt.code)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: 期望%s，实际=%s", tt.code, tt.want, got)
		}
	}

	if _, ok := ResolveCode("cooking"); ok {
		t.Error("未登记代码不应解析成功")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("frontend"); got != "프론트엔드" {
		t.Errorf("期望프론트엔드，实际=%s", got)
	}
	// 未登记 ID 回退为 ID 本身
	if got := DisplayName("custom"); got != "custom" {
		t.Errorf("期望custom，实际=%s", got)
	}
}

func TestKnown(t *testing.T) {
	if !Known("frontend") {
		t.Error("frontend 应在注册表中")
	}
	if Known("fe") {
		t.Error("别名不是规范 program_id，Known 应返回 false")
	}
	if Known("cooking") {
		t.Error("未登记 ID 应返回 false")
	}
}

func TestAll_CoversAliases(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("注册表不应为空")
	}
	// 每个别名的目标 program_id 都应有展示名称
	for alias, programID := range aliasToProgramID {
		if _, ok := all[programID]; !ok {
			t.Errorf("别名 %s 指向的 %s 缺少展示名称", alias, programID)
		}
	}
}
