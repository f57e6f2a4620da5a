package database

// ============================================================================
// COLLECTIONS DU MAGASIN DE DOCUMENTS
// ============================================================================

const (
	CollectionCustomers = "Clientes"
	CollectionSales     = "Vendas"
	CollectionProducts  = "Produtos"
	CollectionColors    = "CorProduto"
	CollectionOrders    = "Pedidos"
)

// Collections liste des collections chargées par le moteur d'analyse
var Collections = []string{
	CollectionCustomers,
	CollectionSales,
	CollectionProducts,
	CollectionColors,
	CollectionOrders,
}

// ============================================================================
// NOMS DE CHAMPS BRUTS
// Les en-têtes historiques mélangent "Id Produto" et id_produto;
// le chargeur les normalise, l'écriture CRUD conserve ceux-ci.
// ============================================================================

// Clientes
const (
	FieldCustomerID    = "id_cliente"
	FieldCustomerName  = "nome"
	FieldCustomerSex   = "sexo"
	FieldCustomerCity  = "cidade"
	FieldCustomerState = "estado2"
	FieldCustomerPhone = "telefone"
)

// Produtos
const (
	FieldProductID       = "Id Produto"
	FieldProductIDAlt    = "id_produto"
	FieldProductName     = "Nome Produto"
	FieldProductCategory = "Categoria Produto"
	FieldProductSupplier = "Fornecedor"
	FieldProductPrice    = "Valor Unitário"
)

// CorProduto
const (
	FieldColorID   = "Id Cor"
	FieldColorName = "Cor"
)

// Pedidos
const (
	FieldOrderID       = "Id Pedido"
	FieldOrderIDAlt    = "id_pedido"
	FieldOrderCustomer = "Id Cliente"
	FieldOrderDate     = "Data Pedido"
	FieldOrderTotal    = "Valor Total"
	FieldOrderPayment  = "Forma de Pagamento"
	FieldOrderChannel  = "Canal de Venda"
)

// Vendas
const (
	FieldSaleID       = "id_venda"
	FieldSaleOrder    = "id_pedido"
	FieldSaleProduct  = "id_produto"
	FieldSaleColor    = "id_cor"
	FieldSaleQuantity = "quantidade"
	FieldSaleSubtotal = "subtotal"
)

// FieldCreatedAt date d'enregistrement ajoutée par le CRUD
const FieldCreatedAt = "data_cadastro"

// OrderDateLayout format des dates de commande écrites par le CRUD et le seed
const OrderDateLayout = "2006-01-02"
