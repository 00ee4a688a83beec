// create-staff 创建员工账号；用户名已存在时把该用户提升为员工。
package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"interior-request-server/internal/config"
	"interior-request-server/internal/db"
	"interior-request-server/internal/logger"
	"interior-request-server/internal/middleware"
	"interior-request-server/internal/model"
	authrepo "interior-request-server/internal/modules/auth/repo"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type staffResult struct {
	Username string
	Password string // 仅新建账号时有值
	Promoted bool
}

func generateRandomString(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ensureStaff 新建员工账号，或把已存在的同名用户提升为员工（不修改其密码）。
func ensureStaff(users authrepo.UserStore, username, email, password string) (*staffResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		suffix, err := generateRandomString(4)
		if err != nil {
			return nil, err
		}
		username = "staff_" + suffix
	}

	existing, err := users.FindByUsername(username)
	switch {
	case err == nil:
		existing.Staff = true
		if err := users.Save(existing); err != nil {
			return nil, fmt.Errorf("提升员工失败: %w", err)
		}
		middleware.ClearAccountCache(existing.ID)
		return &staffResult{Username: username, Promoted: true}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if password == "" {
		if password, err = generateRandomString(8); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(email) == "" {
		email = username + "@staff.local"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}
	user := &model.User{
		Username: username,
		FullName: username,
		Email:    email,
		Password: string(hashed),
		Staff:    true,
	}
	if err := users.Create(user); err != nil {
		return nil, fmt.Errorf("创建员工失败: %w", err)
	}
	return &staffResult{Username: username, Password: password}, nil
}

func main() {
	configDir := flag.String("config", "config", "配置文件目录")
	username := flag.String("username", "", "员工用户名，留空则随机生成")
	email := flag.String("email", "", "员工邮箱")
	password := flag.String("password", "", "员工密码，留空则随机生成")
	flag.Parse()

	config.InitConfig(*configDir)
	cfg := config.Get()
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	db.InitDB()

	result, err := ensureStaff(authrepo.NewUserRepository(db.DB), *username, *email, *password)
	if err != nil {
		logrus.Errorf("❌ %v", err)
		os.Exit(1)
	}

	if result.Promoted {
		fmt.Printf("✅ 用户 %s 已提升为员工\n", result.Username)
		return
	}
	fmt.Println("✅ 员工账号创建成功")
	fmt.Println("======================================")
	fmt.Printf("Username: %s\n", result.Username)
	fmt.Printf("Password: %s\n", result.Password)
	fmt.Println("======================================")
}
