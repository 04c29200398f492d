package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

var messages = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Japanese))
	for tag, entries := range map[language.Tag]map[string]string{
		language.Japanese: ja,
		language.English:  en,
		language.Chinese:  zh,
	} {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}()

var ja = map[string]string{
	"page.title":           "商品管理ダッシュボード",
	"page.loading":         "読み込み中...",
	"list.add":             "新しい商品を追加",
	"list.empty":           "商品がありません",
	"list.id":              "ID",
	"list.name":            "日本語名",
	"list.category":        "カテゴリー",
	"list.brand":           "ブランド",
	"list.price":           "価格",
	"list.image":           "画像",
	"list.actions":         "操作",
	"action.edit":          "編集",
	"action.delete":        "削除",
	"form.create":          "新しい商品を追加",
	"form.edit":            "商品を編集",
	"form.close":           "閉じる",
	"form.submit.add":      "追加",
	"form.submit.save":     "更新",
	"form.cancel":          "キャンセル",
	"form.choose":          "選択してください",
	"field.name_en":        "英語名",
	"field.name_jp":        "日本語名",
	"field.name_cn":        "中国語名",
	"field.category":       "カテゴリー",
	"field.brand":          "ブランド",
	"field.price":          "価格 (円)",
	"field.image":          "画像URL",
	"field.description_en": "英語説明",
	"field.description_jp": "日本語説明",
	"field.description_cn": "中国語説明",
	"category.gloves":      "グローブ",
	"category.mitts":       "ミット",
	"category.protectors":  "プロテクター",
	"category.uniform":     "道着",
	"category.supporters":  "サポーター",
	"confirm.title":        "削除の確認",
	"confirm.yes":          "OK",
	"confirm.no":           "キャンセル",
	"footer.category":      "Category",
	"footer.menu":          "Menu",
	"footer.contact":       "Contact Us",
	"footer.sns":           "SNS",
}

var en = map[string]string{
	"page.title":           "Product Management Dashboard",
	"page.loading":         "Loading...",
	"list.add":             "Add new product",
	"list.empty":           "No products",
	"list.id":              "ID",
	"list.name":            "Japanese name",
	"list.category":        "Category",
	"list.brand":           "Brand",
	"list.price":           "Price",
	"list.image":           "Image",
	"list.actions":         "Actions",
	"action.edit":          "Edit",
	"action.delete":        "Delete",
	"form.create":          "Add new product",
	"form.edit":            "Edit product",
	"form.close":           "Close",
	"form.submit.add":      "Add",
	"form.submit.save":     "Update",
	"form.cancel":          "Cancel",
	"form.choose":          "Please choose",
	"field.name_en":        "English name",
	"field.name_jp":        "Japanese name",
	"field.name_cn":        "Chinese name",
	"field.category":       "Category",
	"field.brand":          "Brand",
	"field.price":          "Price (yen)",
	"field.image":          "Image URL",
	"field.description_en": "English description",
	"field.description_jp": "Japanese description",
	"field.description_cn": "Chinese description",
	"category.gloves":      "Gloves",
	"category.mitts":       "Mitts",
	"category.protectors":  "Protectors",
	"category.uniform":     "Uniform",
	"category.supporters":  "Supporters",
	"confirm.title":        "Confirm deletion",
	"confirm.yes":          "OK",
	"confirm.no":           "Cancel",
	"footer.category":      "Category",
	"footer.menu":          "Menu",
	"footer.contact":       "Contact Us",
	"footer.sns":           "SNS",
}

var zh = map[string]string{
	"page.title":           "商品管理后台",
	"page.loading":         "加载中...",
	"list.add":             "添加新商品",
	"list.empty":           "暂无商品",
	"list.id":              "ID",
	"list.name":            "日文名称",
	"list.category":        "类别",
	"list.brand":           "品牌",
	"list.price":           "价格",
	"list.image":           "图片",
	"list.actions":         "操作",
	"action.edit":          "编辑",
	"action.delete":        "删除",
	"form.create":          "添加新商品",
	"form.edit":            "编辑商品",
	"form.close":           "关闭",
	"form.submit.add":      "添加",
	"form.submit.save":     "更新",
	"form.cancel":          "取消",
	"form.choose":          "请选择",
	"field.name_en":        "英文名称",
	"field.name_jp":        "日文名称",
	"field.name_cn":        "中文名称",
	"field.category":       "类别",
	"field.brand":          "品牌",
	"field.price":          "价格 (日元)",
	"field.image":          "图片URL",
	"field.description_en": "英文说明",
	"field.description_jp": "日文说明",
	"field.description_cn": "中文说明",
	"category.gloves":      "拳套",
	"category.mitts":       "手靶",
	"category.protectors":  "护具",
	"category.uniform":     "道服",
	"category.supporters":  "护具支撑",
	"confirm.title":        "确认删除",
	"confirm.yes":          "OK",
	"confirm.no":           "取消",
	"footer.category":      "Category",
	"footer.menu":          "Menu",
	"footer.contact":       "Contact Us",
	"footer.sns":           "SNS",
}
