package helpers

import (
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func UploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

// SaveMenuItemImage stores an uploaded image under the upload directory and
// returns its path for the menu item record.
func SaveMenuItemImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(UploadDir(), "menu_items")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filename := primitive.NewObjectID().Hex() + filepath.Ext(file.Filename)
	path := filepath.Join(dir, filename)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

// DeleteMenuItemImage releases a previously stored image file.
func DeleteMenuItemImage(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Println("failed to remove image:", err)
	}
}
