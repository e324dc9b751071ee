package utils

import (
	"fmt"
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateEmployeeCode builds a latin employee code from a Chinese name by
// romanizing it and appending a numeric suffix.
func GenerateEmployeeCode(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	code := ""

	for _, p := range pinyinArray {
		code += p
	}

	for i := 0; i < 4; i++ {
		code += string(digits[rand.Intn(len(digits))])
	}

	return code
}

var departments = []string{"first-line", "second-line", "back-office"}
var groups = []string{"A", "B", "C"}

// GenerateRandomStaff produces a seed staff member with a romanized
// employee code.
func GenerateRandomStaff() *domain.StaffMember {
	name := GenerateRandomChineseName()
	return &domain.StaffMember{
		Name:         name,
		EmployeeCode: GenerateEmployeeCode(name),
		Department:   departments[rand.Intn(len(departments))],
		Group:        groups[rand.Intn(len(groups))],
		IsActive:     true,
	}
}

var roles = []domain.Role{domain.RoleAgent, domain.RoleAgent, domain.RoleLeader}

// GenerateRandomUser builds a seed account for a staff member.
func GenerateRandomUser(staff *domain.StaffMember, password string, emailDomainName string) (*domain.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	staffID := staff.ID
	user := &domain.User{
		Username:     staff.EmployeeCode,
		PasswordHash: string(passwordHash),
		FullName:     staff.Name,
		Email:        staff.EmployeeCode + "@" + emailDomainName,
		Role:         roles[rand.Intn(len(roles))],
		Department:   staff.Department,
		StaffID:      &staffID,
	}

	return user, nil
}

func GenerateRandomMemo() string {
	memos := []string{"", "", "", "customer escalation", "covering for colleague", "training session", "planned leave"}
	return memos[rand.Intn(len(memos))]
}

func FormatHour(t float64) string {
	h := int(t)
	m := int((t - float64(h)) * 60)
	return fmt.Sprintf("%02d:%02d", h, m)
}
