package booking

import "github.com/rentalall/booking-service/pkg/txmanager"

// DBExecutor интерфейс для работы с БД
// Репозиторий получает активную транзакцию из контекста через txmanager
type DBExecutor = txmanager.Executor
