package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/models"
	"github.com/shaymimran45/CTF-WAR-2/repository"
	"github.com/shaymimran45/CTF-WAR-2/utils"
)

type FileController struct {
	files      repository.ChallengeFileRepository
	challenges repository.ChallengeRepository
	uploadDir  string
}

func NewFileController(
	files repository.ChallengeFileRepository,
	challenges repository.ChallengeRepository,
	uploadDir string,
) *FileController {
	return &FileController{files: files, challenges: challenges, uploadDir: uploadDir}
}

// Upload 管理员给题目挂附件，multipart 表单，支持一次多个文件
func (ctl *FileController) Upload(c *gin.Context) {
	challengeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid challenge id")
		return
	}
	if _, err := ctl.challenges.FindByID(uint(challengeID)); err != nil {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Multipart form required")
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		utils.Error(c, http.StatusBadRequest, "No files provided")
		return
	}

	dir := filepath.Join(ctl.uploadDir, strconv.Itoa(challengeID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	created := make([]models.ChallengeFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		// 文件名前加时间戳避免重名覆盖
		dst := filepath.Join(dir, fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fh.Filename)))
		if err := c.SaveUploadedFile(fh, dst); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		sum, err := fileSHA256(dst)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		record := models.ChallengeFile{
			ChallengeID: uint(challengeID),
			Filename:    fh.Filename,
			FilePath:    dst,
			FileSize:    fh.Size,
			SHA256:      sum,
		}
		if err := ctl.files.Create(&record); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		created = append(created, record)
	}

	c.JSON(http.StatusCreated, gin.H{"files": created})
}

// Download 附件下载，父题目不可见时拒绝
func (ctl *FileController) Download(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid file id")
		return
	}

	file, err := ctl.files.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "File not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if _, err := ctl.challenges.FindVisibleByID(file.ChallengeID); err != nil {
		utils.Error(c, http.StatusForbidden, "File not accessible")
		return
	}

	if _, err := os.Stat(file.FilePath); err != nil {
		utils.Error(c, http.StatusNotFound, "File not found on server")
		return
	}
	c.FileAttachment(file.FilePath, file.Filename)
}

func (ctl *FileController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("fileId"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid file id")
		return
	}
	file, err := ctl.files.FindByID(uint(id))
	if err != nil {
		utils.Error(c, http.StatusNotFound, "File not found")
		return
	}
	if err := ctl.files.Delete(file.ID); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	// 磁盘文件尽力删除，失败不影响响应
	_ = os.Remove(file.FilePath)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
