package handlers

import (
	"github.com/rogerio-castellano/catalog-sync/internal/redissvc"
	repo "github.com/rogerio-castellano/catalog-sync/internal/repo"
)

var (
	productRepo  repo.ProductRepository
	redisService *redissvc.RedisService
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetRedisService(rs *redissvc.RedisService) {
	redisService = rs
}
