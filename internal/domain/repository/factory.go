package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Bills() BillRepository
	Spending() SpendingRepository
	Analytics() AnalyticsRepository
	Menu() MenuRepository
}
