package controllers

import (
	"context"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"go-restaurant-ordering/database"
	"go-restaurant-ordering/helpers"
	"go-restaurant-ordering/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var menuItemCollection *mongo.Collection = database.OpenCollection(database.Client, "menuItem")

const menuPageSize = 12

// Index lists categories along with a handful of featured available items.
func Index() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		cursor, err := categoryCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing categories"})
			return
		}
		var categories []models.Category
		if err := cursor.All(ctx, &categories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		cursor, err = menuItemCollection.Find(ctx, bson.M{"is_available": true}, options.Find().SetLimit(6))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing menu items"})
			return
		}
		var featured []models.MenuItem
		if err := cursor.All(ctx, &featured); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"categories":     categories,
			"featured_items": featured,
		})
	}
}

func menuSortOption(sort string) bson.D {
	switch sort {
	case "name":
		return bson.D{{Key: "name", Value: 1}}
	case "-name":
		return bson.D{{Key: "name", Value: -1}}
	case "price":
		return bson.D{{Key: "price", Value: 1}}
	case "-price":
		return bson.D{{Key: "price", Value: -1}}
	default:
		return bson.D{{Key: "name", Value: 1}}
	}
}

// GetMenuItems lists available items, optionally filtered by category and a
// case-insensitive search on name/description, sorted and paginated.
func GetMenuItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		filter := bson.M{"is_available": true}
		if categoryId := c.Query("category"); categoryId != "" {
			filter["category_id"] = categoryId
		}
		if search := c.Query("search"); search != "" {
			pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
			filter["$or"] = []bson.M{
				{"name": pattern},
				{"description": pattern},
			}
		}

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		total, err := menuItemCollection.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting menu items"})
			return
		}

		findOptions := options.Find().
			SetSort(menuSortOption(c.DefaultQuery("sort", "name"))).
			SetSkip(int64((page - 1) * menuPageSize)).
			SetLimit(menuPageSize)
		cursor, err := menuItemCollection.Find(ctx, filter, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing menu items"})
			return
		}
		var items []models.MenuItem
		if err := cursor.All(ctx, &items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		catCursor, err := categoryCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing categories"})
			return
		}
		var categories []models.Category
		if err := catCursor.All(ctx, &categories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":       items,
			"categories":  categories,
			"page":        page,
			"total_items": total,
			"total_pages": (total + menuPageSize - 1) / menuPageSize,
		})
	}
}

// AdminMenu lists every item, available or not, for the dashboard.
func AdminMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		cursor, err := menuItemCollection.Find(ctx, bson.M{},
			options.Find().SetSort(bson.D{{Key: "category_id", Value: 1}, {Key: "name", Value: 1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing menu items"})
			return
		}
		var items []models.MenuItem
		if err := cursor.All(ctx, &items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		catCursor, err := categoryCollection.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing categories"})
			return
		}
		var categories []models.Category
		if err := catCursor.All(ctx, &categories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "categories": categories})
	}
}

func CreateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		price, err := strconv.ParseFloat(c.PostForm("price"), 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative number"})
			return
		}
		price = toFixed(price, 2)

		categoryId := c.PostForm("category")
		var category models.Category
		if err := categoryCollection.FindOne(ctx, bson.M{"category_id": categoryId}).Decode(&category); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}

		name := c.PostForm("name")
		description := c.PostForm("description")
		available := true
		item := models.MenuItem{
			Name:         &name,
			Description:  &description,
			Price:        &price,
			Category_id:  &categoryId,
			Is_available: &available,
		}
		validationErr := validate.Struct(&item)
		if validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		if file, err := c.FormFile("image"); err == nil {
			path, err := helpers.SaveMenuItemImage(c, file)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while storing the image"})
				return
			}
			item.Image = &path
		}

		item.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		item.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		item.ID = primitive.NewObjectID()
		item.Item_id = item.ID.Hex()

		result, err := menuItemCollection.InsertOne(ctx, item)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item was not created"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func UpdateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		itemId := c.Param("item_id")

		var item models.MenuItem
		if err := menuItemCollection.FindOne(ctx, bson.M{"item_id": itemId}).Decode(&item); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}

		var updateObj primitive.D
		if name := c.PostForm("name"); name != "" {
			updateObj = append(updateObj, bson.E{Key: "name", Value: name})
		}
		if description := c.PostForm("description"); description != "" {
			updateObj = append(updateObj, bson.E{Key: "description", Value: description})
		}
		if priceStr := c.PostForm("price"); priceStr != "" {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil || price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative number"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "price", Value: toFixed(price, 2)})
		}
		if categoryId := c.PostForm("category"); categoryId != "" {
			var category models.Category
			if err := categoryCollection.FindOne(ctx, bson.M{"category_id": categoryId}).Decode(&category); err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "category_id", Value: categoryId})
		}
		if file, err := c.FormFile("image"); err == nil {
			path, err := helpers.SaveMenuItemImage(c, file)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while storing the image"})
				return
			}
			if item.Image != nil {
				helpers.DeleteMenuItemImage(*item.Image)
			}
			updateObj = append(updateObj, bson.E{Key: "image", Value: path})
		}
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		_, err := menuItemCollection.UpdateOne(
			ctx,
			bson.M{"item_id": itemId},
			bson.D{{Key: "$set", Value: updateObj}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func DeleteMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		itemId := c.Param("item_id")

		var item models.MenuItem
		if err := menuItemCollection.FindOne(ctx, bson.M{"item_id": itemId}).Decode(&item); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		if item.Image != nil {
			helpers.DeleteMenuItemImage(*item.Image)
		}
		if _, err := menuItemCollection.DeleteOne(ctx, bson.M{"item_id": itemId}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item delete failed"})
			return
		}
		// Carts must not keep lines for an item that no longer exists.
		if _, err := cartItemCollection.DeleteMany(ctx, bson.M{"item_id": itemId}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func ToggleAvailability() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		itemId := c.Param("item_id")

		isAvailable := c.PostForm("is_available") == "true"
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		result, err := menuItemCollection.UpdateOne(
			ctx,
			bson.M{"item_id": itemId},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "is_available", Value: isAvailable},
				{Key: "updated_at", Value: updated_at},
			}}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func round(num float64) int {
	return int(num + math.Copysign(0.5, num))
}

func toFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return float64(round(num*output)) / output
}
