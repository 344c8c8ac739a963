package handler

import (
	"time"

	"github.com/palak-raj09/eil-project/internal/util"

	"github.com/gin-gonic/gin"
)

// Health 存活探针
func Health(c *gin.Context) {
	util.Success(c, util.Response{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// 三个看板接口返回固定的演示数据，真实统计不在本服务范围内。
// 角色校验由路由上的 RequireRole 完成。

// ManagementDashboard 管理层看板
func ManagementDashboard(c *gin.Context) {
	now := time.Now().Format(time.RFC3339)
	util.Success(c, util.Response{
		"totalEmployees":   1250,
		"activeProjects":   45,
		"pendingApprovals": 12,
		"recentActivities": []gin.H{
			{"id": 1, "action": "New project approved", "timestamp": now},
			{"id": 2, "action": "Employee onboarding completed", "timestamp": now},
			{"id": 3, "action": "Budget review scheduled", "timestamp": now},
		},
	})
}

// EmployeeDashboard 员工看板
func EmployeeDashboard(c *gin.Context) {
	now := time.Now().Format(time.RFC3339)
	util.Success(c, util.Response{
		"assignedTasks":     8,
		"completedTasks":    23,
		"upcomingDeadlines": 3,
		"recentUpdates": []gin.H{
			{"id": 1, "title": "Project milestone completed", "date": now},
			{"id": 2, "title": "Training session scheduled", "date": now},
			{"id": 3, "title": "Performance review due", "date": now},
		},
	})
}

// TraineeDashboard 实习生看板
func TraineeDashboard(c *gin.Context) {
	now := time.Now().Format(time.RFC3339)
	util.Success(c, util.Response{
		"trainingProgress": 65,
		"completedModules": 8,
		"totalModules":     12,
		"nextAssignment":   "Safety Protocols Assessment",
		"mentor":           "Dr. Sarah Johnson",
		"upcomingTraining": []gin.H{
			{"id": 1, "title": "Advanced Engineering Principles", "date": now},
			{"id": 2, "title": "Project Management Basics", "date": now},
		},
	})
}
