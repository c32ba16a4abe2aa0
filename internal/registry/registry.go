// Package registry 维护静态的课程代码注册表。
//
// 注册表在部署期只增不改：文件名中的课程代码（含历史别名）统一映射到
// 规范的 program_id，再由 program_id 查询展示名称。
// 未登记的代码是正常的预期结果，由调用方走失败分支处理，不视为错误。
package registry

import "strings"

// aliasToProgramID 课程代码/别名 → 规范 program_id
// 同一课程可能以多个别名出现在导出文件名中（如 fe / frontend）
var aliasToProgramID = map[string]string{
	"design":     "uxui",
	"uxui":       "uxui",
	"fe":         "frontend",
	"frontend":   "frontend",
	"be":         "backend",
	"backend":    "backend",
	"ios":        "ios",
	"android":    "android",
	"data":       "data",
	"unity":      "game",
	"game":       "game",
	"cloud":      "cloud",
	"ai":         "ai",
	"aiw":        "aiw",
	"growth":     "growth",
	"blockchain": "blockchain",
	"startup":    "startup",
	"shortterm":  "shortterm",
	"aiservice":  "ai-service",
}

// programNames program_id → 展示名称
var programNames = map[string]string{
	"frontend":   "프론트엔드",
	"backend":    "백엔드",
	"ios":        "iOS 개발",
	"android":    "Android 개발",
	"data":       "데이터 분석",
	"uxui":       "UX/UI 디자인",
	"startup":    "스타트업 스테이션",
	"shortterm":  "단기 심화",
	"ai-service": "AI 웹 서비스 개발",
	"game":       "유니티 게임 개발",
	"cloud":      "클라우드 엔지니어링",
	"ai":         "AI",
	"aiw":        "AI 웹 개발",
	"blockchain": "블록체인",
	"growth":     "그로스 마케팅",
}

// ResolveCode 按课程代码（或别名）查找规范 program_id
// 匹配前统一转为小写；未登记的代码返回 ok=false
func ResolveCode(code string) (programID string, ok bool) {
	programID, ok = aliasToProgramID[strings.ToLower(code)]
	return programID, ok
}

// DisplayName 按 program_id 查询展示名称
// 未登记的 ID 返回 ID 本身，保证展示层总有可用文案
func DisplayName(programID string) string {
	if name, ok := programNames[programID]; ok {
		return name
	}
	return programID
}

// Known 判断 program_id 是否出自注册表
func Known(programID string) bool {
	_, ok := programNames[programID]
	return ok
}

// All 返回注册表中全部 program_id → 展示名称
// 用于启动时预置课程记录
func All() map[string]string {
	out := make(map[string]string, len(programNames))
	for id, name := range programNames {
		out[id] = name
	}
	return out
}
