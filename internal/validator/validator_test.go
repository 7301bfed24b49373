package validator

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name  string `json:"name" form:"name" binding:"required,max=5"`
	Email string `json:"email" form:"email" binding:"omitempty,email"`
}

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

func bindJSON(t *testing.T, body string) map[string]string {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst contactForm
	return Bind(c, &dst)
}

func TestBind(t *testing.T) {
	assert.Nil(t, bindJSON(t, `{"name":"张三"}`))

	fields := bindJSON(t, `{"email":"bad"}`)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")

	fields = bindJSON(t, `{"name":`)
	assert.Contains(t, fields, "detail")
}

func TestBindForm(t *testing.T) {
	form := url.Values{"name": {"李四"}, "email": {"li@example.com"}}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dst contactForm
	require.Nil(t, BindForm(c, &dst))
	assert.Equal(t, "李四", dst.Name)

	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=toolongname"))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	fields := BindForm(c, &contactForm{})
	require.NotNil(t, fields)
	assert.Contains(t, fields, "name")
}

type phoneForm struct {
	Phone string `json:"phone" binding:"required,contact_phone"`
}

func TestContactPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{phone: "13800000000", valid: true},
		{phone: "0573-1234567", valid: true},
		{phone: "+86 138 0000 0000", valid: true},
		{phone: "(0573) 8888-6666", valid: true},
		{phone: "123", valid: false},
		{phone: "1380000abcd", valid: false},
		{phone: "138+00000000", valid: false},
		{phone: "1234567890123456", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"`+tt.phone+`"}`))
			c.Request.Header.Set("Content-Type", "application/json")

			fields := Bind(c, &phoneForm{})
			if tt.valid {
				assert.Nil(t, fields)
				return
			}
			require.NotNil(t, fields)
			assert.Contains(t, fields["phone"], "phone")
		})
	}
}

func TestContactPhone_TranslatedMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"abcdefg"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	fields := Bind(c, &phoneForm{})
	assert.Equal(t, "phone必须是有效的联系电话", fields["phone"])
}

type companyForm struct {
	Company string `form:"company" binding:"required,notblank"`
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name    string
		company string
		valid   bool
	}{
		{name: "text", company: "嘉兴某科技有限公司", valid: true},
		{name: "padded text", company: "  嘉兴  ", valid: true},
		{name: "spaces", company: "   ", valid: false},
		{name: "tabs and newlines", company: "\t\n", valid: false},
		{name: "ideographic space", company: "\u3000", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"company": {tt.company}}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
			c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			fields := BindForm(c, &companyForm{})
			if tt.valid {
				assert.Nil(t, fields)
				return
			}
			assert.Equal(t, "company不能为空", fields["company"])
		})
	}
}
