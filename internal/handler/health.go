package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mdwaseel/batsdatacollection/internal/storage"
)

// Health reports database and object-storage reachability.
func Health(db *gorm.DB, store storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		dbState, storageState := "up", "up"

		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			dbState = "down"
			status = http.StatusServiceUnavailable
		}
		if err := store.Ping(c.Request.Context()); err != nil {
			storageState = "down"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{"database": dbState, "storage": storageState})
	}
}
