package repo

import (
	"errors"
	"testing"
	"time"

	"interior-request-server/internal/model"
	"interior-request-server/internal/testutils"
	"interior-request-server/internal/workflow"

	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// 测试内容：CreateWithImage 在同一事务中写入申请和方案图，失败时整体回滚。
func TestCreateWithImage(t *testing.T) {
	gdb := testutils.SetupDB(t)
	r := NewApplicationRepository(gdb)
	user := testutils.CreateUser(t, gdb, "alice", false)
	cat := testutils.CreateCategory(t, gdb, "Kitchen")

	app := &model.Application{UserID: user.ID, CategoryID: cat.ID, Title: "t", Description: "d", Status: model.StatusNew}
	img := &model.ApplicationImage{Image: "plans/a.png", OriginalName: "a.png", Size: 10, ImageType: model.ImageTypePlan}
	if err := r.CreateWithImage(app, img); err != nil {
		t.Fatalf("CreateWithImage: %v", err)
	}
	if app.ID == 0 || img.ApplicationID != app.ID || len(app.Images) != 1 {
		t.Fatalf("非预期的结果: app=%+v img=%+v", app, img)
	}

	// 分类不存在时外键失败，申请也不应留下
	bad := &model.Application{UserID: user.ID, CategoryID: 9999, Title: "t", Description: "d", Status: model.StatusNew}
	if err := r.CreateWithImage(bad, &model.ApplicationImage{Image: "plans/b.png"}); err == nil {
		t.Fatalf("期望外键错误")
	}
	var count int64
	gdb.Model(&model.Application{}).Count(&count)
	if count != 1 {
		t.Fatalf("期望 1 条申请，实际为 %d", count)
	}
}

// 测试内容：FindByIDAndUserID 只返回属于该用户的申请。
func TestFindByIDAndUserID(t *testing.T) {
	gdb := testutils.SetupDB(t)
	r := NewApplicationRepository(gdb)
	alice := testutils.CreateUser(t, gdb, "alice", false)
	bob := testutils.CreateUser(t, gdb, "bob", false)
	cat := testutils.CreateCategory(t, gdb, "Kitchen")
	app := testutils.CreateApplication(t, gdb, alice.ID, cat.ID, model.StatusNew)

	got, err := r.FindByIDAndUserID(app.ID, alice.ID)
	if err != nil || got.Category.Name != "Kitchen" || len(got.Images) != 1 {
		t.Fatalf("非预期的结果: %+v err=%v", got, err)
	}
	if _, err := r.FindByIDAndUserID(app.ID, bob.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("期望 ErrRecordNotFound，实际为 %v", err)
	}
}

// 测试内容：DeleteIfNew 只删除新建状态的申请，否则返回 ErrStatusChanged 且不删除图片。
func TestDeleteIfNew(t *testing.T) {
	gdb := testutils.SetupDB(t)
	r := NewApplicationRepository(gdb)
	user := testutils.CreateUser(t, gdb, "alice", false)
	cat := testutils.CreateCategory(t, gdb, "Kitchen")
	open := testutils.CreateApplication(t, gdb, user.ID, cat.ID, model.StatusNew)
	locked := testutils.CreateApplication(t, gdb, user.ID, cat.ID, model.StatusInProgress)

	images, err := r.DeleteIfNew(open.ID, user.ID)
	if err != nil || len(images) != 1 {
		t.Fatalf("期望删除成功并返回 1 张图片，实际为 %d, err=%v", len(images), err)
	}

	if _, err := r.DeleteIfNew(locked.ID, user.ID); !errors.Is(err, ErrStatusChanged) {
		t.Fatalf("期望 ErrStatusChanged，实际为 %v", err)
	}
	var imageCount int64
	gdb.Model(&model.ApplicationImage{}).Where("application_id = ?", locked.ID).Count(&imageCount)
	if imageCount != 1 {
		t.Fatalf("事务回滚后图片应保留，实际为 %d", imageCount)
	}
}

// 测试内容：ApplyTransition 只在新建状态下写入，第二次写入返回 ErrStatusChanged。
func TestApplyTransition_CompareAndSwap(t *testing.T) {
	gdb := testutils.SetupDB(t)
	r := NewApplicationRepository(gdb)
	user := testutils.CreateUser(t, gdb, "alice", false)
	cat := testutils.CreateCategory(t, gdb, "Kitchen")
	app := testutils.CreateApplication(t, gdb, user.ID, cat.ID, model.StatusNew)

	outcome := workflow.Outcome{From: model.StatusNew, Status: model.StatusCompleted, Comment: strPtr("done"), AttachDesign: true}
	design := &model.ApplicationImage{Image: "designs/d.png", OriginalName: "d.png", Size: 5}
	if err := r.ApplyTransition(app.ID, outcome, design); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}

	got, err := r.FindByID(app.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Status != model.StatusCompleted || got.AdminComment == nil || *got.AdminComment != "done" {
		t.Fatalf("非预期的结果: %+v", got)
	}
	if len(got.Images) != 2 || got.Images[1].ImageType != model.ImageTypeDesign {
		t.Fatalf("期望追加一张设计图，实际为 %+v", got.Images)
	}

	second := &model.ApplicationImage{Image: "designs/e.png"}
	if err := r.ApplyTransition(app.ID, outcome, second); !errors.Is(err, ErrStatusChanged) {
		t.Fatalf("期望 ErrStatusChanged，实际为 %v", err)
	}
	var designs int64
	gdb.Model(&model.ApplicationImage{}).Where("application_id = ? AND image_type = ?", app.ID, model.ImageTypeDesign).Count(&designs)
	if designs != 1 {
		t.Fatalf("期望仅 1 张设计图，实际为 %d", designs)
	}
}

// 测试内容：员工备注（new -> new）保持可变更状态，再次写入仍然成功。
func TestApplyTransition_StaffNote(t *testing.T) {
	gdb := testutils.SetupDB(t)
	r := NewApplicationRepository(gdb)
	user := testutils.CreateUser(t, gdb, "alice", false)
	cat := testutils.CreateCategory(t, gdb, "Kitchen")
	app := testutils.CreateApplication(t, gdb, user.ID, cat.ID, model.StatusNew)

	note := workflow.Outcome{From: model.StatusNew, Status: model.StatusNew, Comment: strPtr("first")}
	if err := r.ApplyTransition(app.ID, note, nil); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	note.Comment = strPtr("second")
	if err := r.ApplyTransition(app.ID, note, nil); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	got, _ := r.FindByID(app.ID)
	if got.Status != model.StatusNew || *got.AdminComment != "second" {
		t.Fatalf("非预期的结果: %+v", got)
	}
}

// 测试内容：AdminList 关键字按字面匹配（含分类名），% 与 _ 不作通配符；创建日期区间左闭右开。
func TestAdminList_SearchAndCreatedRange(t *testing.T) {
	gdb := testutils.SetupDB(t)
	r := NewApplicationRepository(gdb)
	user := testutils.CreateUser(t, gdb, "alice", false)
	kitchen := testutils.CreateCategory(t, gdb, "Kitchen")
	bath := testutils.CreateCategory(t, gdb, "Bathroom")

	discount := testutils.CreateApplication(t, gdb, user.ID, kitchen.ID, model.StatusNew)
	gdb.Model(&discount).Updates(map[string]interface{}{"title": "50% off tiles", "created_at": time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)})
	plain := testutils.CreateApplication(t, gdb, user.ID, kitchen.ID, model.StatusNew)
	gdb.Model(&plain).Updates(map[string]interface{}{"title": "500 tiles", "created_at": time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)})
	bathApp := testutils.CreateApplication(t, gdb, user.ID, bath.ID, model.StatusNew)
	gdb.Model(&bathApp).Update("created_at", time.Date(2026, 10, 3, 8, 0, 0, 0, time.UTC))

	search := func(q string) int64 {
		t.Helper()
		_, total, err := r.AdminList(AdminFilter{Search: q, Limit: 10})
		if err != nil {
			t.Fatalf("AdminList: %v", err)
		}
		return total
	}

	if got := search("50%"); got != 1 {
		t.Fatalf("期望 %% 按字面匹配 1 条，实际为 %d", got)
	}
	if got := search("_0"); got != 0 {
		t.Fatalf("期望 _ 按字面匹配 0 条，实际为 %d", got)
	}
	if got := search("Bathroom"); got != 1 {
		t.Fatalf("期望按分类名匹配 1 条，实际为 %d", got)
	}

	from := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
	before := time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)
	apps, total, err := r.AdminList(AdminFilter{CreatedFrom: &from, CreatedBefore: &before, Limit: 10})
	if err != nil {
		t.Fatalf("AdminList: %v", err)
	}
	if total != 1 || len(apps) != 1 || apps[0].ID != plain.ID {
		t.Fatalf("期望日期区间内仅有 %d，实际为 total=%d apps=%d", plain.ID, total, len(apps))
	}
}
