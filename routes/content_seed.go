package routes

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/civicpulse/campaign/app"
	"github.com/civicpulse/campaign/httpx"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
)

// seedContent is one default web_content row; location ends up in the
// metadata column and tells the front end where the text is rendered.
type seedContent struct {
	section  string
	key      string
	title    string
	content  string
	location string
}

var defaultWebContent = []seedContent{
	// hero
	{"hero", "main_title", "메인 제목", "진안군 목조전망대 건설 반대", "hero-title"},
	{"hero", "subtitle", "부제목", "자연을 지키고 미래를 생각하는 선택", "hero-subtitle"},
	{"hero", "description", "설명", "지방자치법 위반 우려로 추진되는 130억원 규모의 목조전망대 건설을 반대합니다.", "hero-description"},

	// motivation section
	{"motivation", "section_title", "섹션 제목", "왜 서명해야 할까요?", "motivation-title"},
	{"motivation", "section_subtitle", "섹션 부제목", "민주주의와 군민의 권익을 지키기 위한 세 가지 핵심 이유", "motivation-subtitle"},

	// card 1: democratic crisis
	{"motivation", "democracy_crisis_title", "민주주의 위기 제목", "민주주의 위기", "card1-title"},
	{"motivation", "democracy_crisis_subtitle", "민주주의 위기 부제목", "🛑 이것은 민주주의입니까, 독재입니까?", "card1-subtitle"},
	{"motivation", "democracy_point1_title", "의회 반대 제목", "의회, 사업에 강한 반대 의견 표명", "card1-point1-title"},
	{"motivation", "democracy_point1_content", "의회 반대 내용", "295회 군의회에서 용역비 집행을 사업추진의 기본적인 타당성 확보 이후로 조건부 부결", "card1-point1-content"},
	{"motivation", "democracy_point2_title", "군수 독단 제목", "군수, 독단 강행", "card1-point2-title"},
	{"motivation", "democracy_point2_content", "군수 독단 내용", "의회의 반대 의견을 무릅쓰고 집행부 pool 예산을 사용하여 사업 강행\n지방자치법 제 55조를 위반하여 안건을 군의회에 사전 제출하지 않음", "card1-point2-content"},
	{"motivation", "democracy_point3_title", "군민 대표권 훼손 제목", "군민 대표권 훼손", "card1-point3-title"},
	{"motivation", "democracy_point3_content", "군민 대표권 훼손 내용", "형식적인 설문조사, 공청회 진행을 통한 민주적 절차 무시 및 의회 권한 침해.\n지방자치법 제 55조를 위반에 대한 군민과 군의회에 사과하지 않고 오히려 정당성 주장\n향후 이런 독재적 행정이 반복될 수 있음.", "card1-point3-content"},

	// card 2: wasted budget
	{"motivation", "budget_waste_title", "예산 낭비 제목", "예산 낭비", "card2-title"},
	{"motivation", "budget_waste_subtitle", "예산 낭비 부제목", "💰 130억원의 무책임한 낭비", "card2-subtitle"},
	{"motivation", "budget_person_amount", "1인당 부담액", "178만원", "card2-person-amount"},
	{"motivation", "budget_person_label", "1인당 부담 라벨", "군민 1인당 부담액", "card2-person-label"},
	{"motivation", "budget_family_amount", "4인 가족 부담액", "712만원", "card2-family-amount"},
	{"motivation", "budget_family_label", "4인 가족 부담 라벨", "4인 가족 기준 부담", "card2-family-label"},
	{"motivation", "budget_population", "인구 기준", "진안군 인구 25,000명 기준", "card2-population"},

	// card 3: environmental damage
	{"motivation", "environment_title", "환경 파괴 제목", "또 실패하면?", "card3-title"},
	{"motivation", "environment_subtitle", "환경 파괴 부제목", "🌲 소중한 자연 생태계 훼손", "card3-subtitle"},
	{"motivation", "failure_past_title", "과거 실패 제목", "과거: 마이산 케이블카", "card3-past-title"},
	{"motivation", "failure_past_content", "과거 실패 내용", "29억원 손실 사업", "card3-past-content"},
	{"motivation", "failure_present_title", "현재 위험 제목", "현재: 전망대 강행", "card3-present-title"},
	{"motivation", "failure_present_content", "현재 위험 내용", "445억원 위험 투자", "card3-present-content"},
	{"motivation", "failure_future_title", "미래 우려 제목", "미래: 더 큰 부담?", "card3-future-title"},
	{"motivation", "failure_future_content", "미래 우려 내용", "지속적인 적자 운영 우려", "card3-future-content"},

	// header
	{"header", "site_title", "사이트 제목", "진안군 목조전망대 반대 캠페인", "header-title"},
	{"header", "login_button", "로그인 버튼", "로그인", "header-login"},
	{"header", "logout_button", "로그아웃 버튼", "로그아웃", "header-logout"},

	// footer
	{"footer", "site_description", "사이트 설명", "군민의 소중한 세금을 지키고\n민주적 절차를 존중하는\n건전한 지방자치를 만들어갑니다.", "footer-description"},
	{"footer", "contact_title", "연락처 제목", "연락처", "footer-contact-title"},
	{"footer", "contact_email", "이메일", "campaign@jinan.org", "footer-email"},
	{"footer", "contact_phone", "전화번호", "063-000-0000", "footer-phone"},
	{"footer", "contact_address", "주소", "전북 진안군 진안읍", "footer-address"},
	{"footer", "info_title", "정보 제목", "정보", "footer-info-title"},
	{"footer", "privacy_info", "개인정보 보호", "• 수집된 정보는 캠페인 목적으로만 사용\n• SSL 암호화로 안전하게 보관\n• 제3자 제공 금지\n• 캠페인 종료 후 즉시 삭제", "footer-privacy"},
	{"footer", "admin_login", "관리자 로그인", "관리자 로그인", "footer-admin"},
	{"footer", "copyright", "저작권", "© 2024 진안군 목조전망대 반대 캠페인. 모든 권리 보유.", "footer-copyright"},
	{"footer", "purpose", "앱 목적", "이 앱은 민주적 참여를 위한 비영리 목적으로 제작되었습니다.", "footer-purpose"},

	// navigation tabs
	{"navigation", "notices_tab", "공지사항 탭", "공지사항", "nav-notices"},
	{"navigation", "signature_tab", "서명 탭", "서명하기", "nav-signature"},
	{"navigation", "policies_tab", "정책 탭", "정책제안", "nav-policies"},
	{"navigation", "resources_tab", "자료 탭", "자료실", "nav-resources"},
	{"navigation", "dashboard_tab", "현황 탭", "현황", "nav-dashboard"},
}

var surveyWebContent = []seedContent{
	// survey page header
	{"survey", "page_title", "여론조사 페이지 제목", "지방자치단체 대규모 프로젝트 여론조사", "survey-header"},
	{"survey", "page_description", "여론조사 설명", "존경하는 군민 여러분, 우리 지방자치단체는 대규모 프로젝트 추진에 앞서 군민 여러분의 소중한 의견을 듣고자 합니다.", "survey-description"},

	// navigation
	{"survey", "start_button", "시작 버튼", "설문 시작하기", "survey-start-button"},
	{"survey", "previous_button", "이전 버튼", "이전", "survey-nav"},
	{"survey", "next_button", "다음 버튼", "다음", "survey-nav"},
	{"survey", "submit_button", "제출 버튼", "설문 제출하기", "survey-submit"},

	// status messages
	{"survey", "progress_label", "진행률 라벨", "진행률", "survey-progress"},
	{"survey", "step_label", "단계 라벨", "단계", "survey-progress"},
	{"survey", "required_field_error", "필수 입력 오류", "이 질문은 필수입니다.", "survey-validation"},
	{"survey", "submission_success", "제출 성공 메시지", "설문이 성공적으로 제출되었습니다. 소중한 의견을 주셔서 감사합니다!", "survey-completion"},
	{"survey", "submission_error", "제출 오류 메시지", "설문 제출 중 오류가 발생했습니다. 다시 시도해 주세요.", "survey-error"},
	{"survey", "login_required", "로그인 필요 메시지", "설문 참여를 위해 로그인이 필요합니다.", "survey-auth"},
	{"survey", "already_participated", "이미 참여 메시지", "이미 이 설문에 참여하셨습니다.", "survey-participation"},

	// choice helpers
	{"survey", "multiple_choice_helper", "복수선택 안내", "여러 개를 선택할 수 있습니다.", "survey-helper"},
	{"survey", "single_choice_helper", "단일선택 안내", "하나만 선택해 주세요.", "survey-helper"},

	// results view
	{"survey", "results_title", "결과 제목", "여론조사 결과", "survey-results"},
	{"survey", "total_responses", "총 응답 수", "총 응답 수", "survey-results"},
	{"survey", "participation_rate", "참여율", "참여율", "survey-results"},
	{"survey", "view_results_button", "결과 보기 버튼", "결과 보기", "survey-results"},
}

// InitializeContent installs the site's default web content. Idempotent:
// rows already present (by section/key) are left untouched, so edits made
// through the admin console survive re-initialization.
func InitializeContent(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		created, err := installWebContent(r.Context(), app.DB, defaultWebContent, false)
		if err != nil {
			httpx.LogInternalError(w, "db.initialize_content", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"message": "web content initialized",
			"created": created,
		})
	}
}

// InitializeSurveyContent installs the survey page's default copy. Unlike
// InitializeContent it overwrites existing rows, resetting the survey copy
// to the shipped defaults.
func InitializeSurveyContent(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applied, err := installWebContent(r.Context(), app.DB, surveyWebContent, true)
		if err != nil {
			httpx.LogInternalError(w, "db.initialize_survey_content", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"message": "survey content initialized",
			"applied": applied,
		})
	}
}

// installWebContent applies the entries and reports how many rows changed;
// with overwrite false, conflicting rows are skipped and not counted.
func installWebContent(ctx context.Context, db *sql.DB, entries []seedContent, overwrite bool) (applied int, err error) {
	conflict := "DO NOTHING"
	if overwrite {
		conflict = `DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			metadata = excluded.metadata,
			updated_at = CURRENT_TIMESTAMP`
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO web_content (section, key, title, content, metadata)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (section, key) `+conflict)
	if err != nil {
		return 0, errors.Wrap(err, "prepare web content insert")
	}
	defer stmt.Close()

	for _, e := range entries {
		metadata, err := json.Marshal(map[string]string{"location": e.location})
		if err != nil {
			return applied, errors.Wrapf(err, "marshal metadata of %s/%s", e.section, e.key)
		}

		result, err := stmt.ExecContext(ctx, e.section, e.key, e.title, e.content, string(metadata))
		if err != nil {
			return applied, errors.Wrapf(err, "install web content %s/%s", e.section, e.key)
		}
		changed, err := result.RowsAffected()
		if err != nil {
			return applied, errors.Wrapf(err, "install web content %s/%s", e.section, e.key)
		}
		applied += int(changed)
	}
	return applied, nil
}
